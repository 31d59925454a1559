package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// LoadRecord returns the save record for gameID. ok is false when none exists.
func (s *Store) LoadRecord(gameID string) (rec core.SaveRecord, ok bool, err error) {
	err = s.db.QueryRow(
		"SELECT highscore FROM save_records WHERE game_id = ?",
		gameID,
	).Scan(&rec.HighScore)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SaveRecord{}, false, nil
	}
	if err != nil {
		return core.SaveRecord{}, false, fmt.Errorf("storage: cannot load save record: %w", err)
	}
	return rec, true, nil
}

// StoreRecord writes the save record for gameID. A stored high score never
// decreases, so concurrent sessions cannot overwrite a better result.
func (s *Store) StoreRecord(gameID string, rec core.SaveRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO save_records (game_id, highscore) VALUES (?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
			highscore = MAX(highscore, excluded.highscore),
			updated_at = CURRENT_TIMESTAMP`,
		gameID, rec.HighScore,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot store save record: %w", err)
	}
	return nil
}

// Slot adapts a Store to core.SaveSlot for one game ID.
type Slot struct {
	store  *Store
	gameID string
}

// NewSlot returns the save slot for gameID.
func NewSlot(store *Store, gameID string) *Slot {
	return &Slot{store: store, gameID: gameID}
}

// Load returns the stored record. Read errors count as no record.
func (sl *Slot) Load() (core.SaveRecord, bool) {
	rec, ok, err := sl.store.LoadRecord(sl.gameID)
	if err != nil {
		return core.SaveRecord{}, false
	}
	return rec, ok
}

// Store persists rec.
func (sl *Slot) Store(rec core.SaveRecord) error {
	return sl.store.StoreRecord(sl.gameID, rec)
}

var _ core.SaveSlot = (*Slot)(nil)
