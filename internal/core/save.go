package core

// SaveRecord is the persisted game progress.
type SaveRecord struct {
	HighScore int `json:"highscore" yaml:"highscore"`
}

// SaveSlot loads and stores a single SaveRecord.
// Load returns false when no usable record exists.
type SaveSlot interface {
	Load() (SaveRecord, bool)
	Store(rec SaveRecord) error
}

// MemorySlot is an in-process SaveSlot, used when no database is available.
type MemorySlot struct {
	rec   SaveRecord
	saved bool
}

// Load returns the last stored record.
func (m *MemorySlot) Load() (SaveRecord, bool) {
	return m.rec, m.saved
}

// Store keeps rec in memory.
func (m *MemorySlot) Store(rec SaveRecord) error {
	m.rec = rec
	m.saved = true
	return nil
}
