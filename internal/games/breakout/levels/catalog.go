package levels

import (
	"errors"
	"fmt"
)

// Lattice dimensions shared by every level.
const (
	GridWidth  = 10
	GridHeight = 8
)

var (
	ErrEmptyCatalog = errors.New("levels: catalog is empty")
	ErrGridSize     = errors.New("levels: grid is not 10x8")
	ErrNoScoring    = errors.New("levels: level has no scoring blocks")
	ErrLattice      = errors.New("levels: ball does not fit the block lattice")
)

// Level is one playable layout.
type Level struct {
	ID     string
	Name   string
	Grid   Grid
	Source string // File the level was loaded from, empty for built-ins
}

// Validate checks the level against the fixed lattice.
// A level without scoring blocks would count as cleared the moment it loads.
func (l Level) Validate() error {
	if l.Grid.Height() != GridHeight {
		return fmt.Errorf("%w: %q has %d rows", ErrGridSize, l.ID, l.Grid.Height())
	}
	for r, row := range l.Grid {
		if len(row) != GridWidth {
			return fmt.Errorf("%w: %q row %d has %d cells", ErrGridSize, l.ID, r, len(row))
		}
	}
	if l.Grid.Scoring() == 0 {
		return fmt.Errorf("%w: %q", ErrNoScoring, l.ID)
	}
	return nil
}

// Catalog is an ordered, non-empty list of levels.
type Catalog struct {
	levels []Level
}

// NewCatalog validates levels and wraps them in a catalog.
func NewCatalog(levels []Level) (*Catalog, error) {
	c := &Catalog{levels: levels}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Builtin returns the catalog of levels shipped with the game.
func Builtin() *Catalog {
	return &Catalog{levels: BuiltinLevels()}
}

// Validate checks every level in the catalog.
func (c *Catalog) Validate() error {
	if len(c.levels) == 0 {
		return ErrEmptyCatalog
	}
	var errs []error
	for _, l := range c.levels {
		if err := l.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Level returns the level at index, wrapping past either end.
func (c *Catalog) Level(index int) Level {
	n := len(c.levels)
	i := index % n
	if i < 0 {
		i += n
	}
	return c.levels[i]
}

// Next returns the index that follows index, wrapping to 0 after the last level.
func (c *Catalog) Next(index int) int {
	return (index + 1) % len(c.levels)
}

// Levels returns a copy of the level list.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	copy(out, c.levels)
	return out
}

// CheckLattice reports whether a ball of half-size ballSize is guaranteed to be
// caught by the 2x2 neighbourhood search on a lattice with the given cell size.
func CheckLattice(cellSize, ballSize float64) error {
	if cellSize <= 0 || ballSize <= 0 || ballSize >= cellSize/2 {
		return fmt.Errorf("%w: ball %.2f, cell %.2f", ErrLattice, ballSize, cellSize)
	}
	return nil
}

func mustRows(id, name string, lines ...string) Level {
	g, err := ParseRows(lines)
	if err != nil {
		panic(fmt.Sprintf("builtin level %s: %v", id, err))
	}
	return Level{ID: id, Name: name, Grid: g}
}

// BuiltinLevels returns all built-in levels.
func BuiltinLevels() []Level {
	return []Level{
		mustRows("classic", "Classic",
			"..........",
			"1111111111",
			"1111111111",
			"2222222222",
			"1111111111",
			"..........",
			"..........",
			"..........",
		),

		mustRows("pyramid", "Pyramid",
			"....33....",
			"...2222...",
			"..222222..",
			".11111111.",
			"1111111111",
			"..........",
			"..........",
			"..........",
		),

		mustRows("checker", "Checkerboard",
			"2.2.2.2.2.",
			".1.1.1.1.1",
			"2.2.2.2.2.",
			".1.1.1.1.1",
			"2.2.2.2.2.",
			".1.1.1.1.1",
			"..........",
			"..........",
		),

		mustRows("corridor", "Corridor",
			"#12344321#",
			"#11111111#",
			"#........#",
			"#..X..X..#",
			"#........#",
			"..........",
			"..........",
			"..........",
		),

		mustRows("fortress", "Fortress",
			"XXXXXXXXXX",
			"X33333333X",
			"X2222222XX",
			"X11111111X",
			"XXXX..XXXX",
			"..........",
			"..........",
			"..........",
		),

		mustRows("invaders", "Invaders",
			"..1....1..",
			"...1..1...",
			"..222222..",
			".22.22.22.",
			"2222222222",
			"2.222222.2",
			"2.2....2.2",
			"...22.22..",
		),

		mustRows("castle", "Castle",
			"#.#....#.#",
			"###....###",
			"..........",
			"4444444444",
			"3333333333",
			"2222222222",
			"1111111111",
			"..........",
		),

		mustRows("boss", "Final Boss",
			"##########",
			"9........9",
			".55555555.",
			".5XXXXXX5.",
			".55555555.",
			"..........",
			"#...XX...#",
			"..........",
		),
	}
}
