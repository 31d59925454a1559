// Package levels holds the fixed-lattice block layouts breakout is played on.
// This package depends on nothing in breakout so packs can be checked offline.
package levels

import (
	"errors"
	"fmt"
)

// Raw grid codes, as stored in level data.
const (
	CodeEmpty    = 0
	CodeWall     = -1
	CodeObstacle = -2
)

// ObstacleHealth is the hit count given to obstacle cells.
const ObstacleHealth = 3

// CellKind is the closed set of things a lattice cell can hold.
type CellKind int

const (
	CellEmpty          CellKind = iota // No block
	CellDestructible                   // Scoring block with HP hit points
	CellIndestructible                 // Wall, never damaged
	CellObstacle                       // Breakable but awards nothing
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellDestructible:
		return "destructible"
	case CellIndestructible:
		return "indestructible"
	case CellObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Cell is one decoded lattice cell.
type Cell struct {
	Kind CellKind
	HP   int
}

// ErrBadCode is returned for grid codes below CodeObstacle.
var ErrBadCode = errors.New("levels: unknown cell code")

// DecodeCell turns a raw grid code into a Cell.
func DecodeCell(code int) (Cell, error) {
	switch {
	case code == CodeEmpty:
		return Cell{Kind: CellEmpty}, nil
	case code > 0:
		return Cell{Kind: CellDestructible, HP: code}, nil
	case code == CodeWall:
		return Cell{Kind: CellIndestructible, HP: -1}, nil
	case code == CodeObstacle:
		return Cell{Kind: CellObstacle, HP: ObstacleHealth}, nil
	default:
		return Cell{}, fmt.Errorf("%w: %d", ErrBadCode, code)
	}
}

// Code returns the raw grid code for the cell.
func (c Cell) Code() int {
	switch c.Kind {
	case CellDestructible:
		return c.HP
	case CellIndestructible:
		return CodeWall
	case CellObstacle:
		return CodeObstacle
	default:
		return CodeEmpty
	}
}

// Occupied reports whether the cell produces a block.
func (c Cell) Occupied() bool {
	return c.Kind != CellEmpty
}

// Scoring reports whether hitting the cell's block awards points.
func (c Cell) Scoring() bool {
	return c.Kind == CellDestructible
}

// Glyph returns the ASCII legend character for the cell.
func (c Cell) Glyph() byte {
	switch c.Kind {
	case CellDestructible:
		if c.HP > 9 {
			return '9'
		}
		return byte('0' + c.HP)
	case CellIndestructible:
		return '#'
	case CellObstacle:
		return 'X'
	default:
		return '.'
	}
}

// Grid is a decoded level layout indexed [row][col].
type Grid [][]Cell

// DecodeGrid converts raw codes into a Grid. Ragged rows are padded with empty cells.
func DecodeGrid(codes [][]int) (Grid, error) {
	width := 0
	for _, row := range codes {
		width = max(width, len(row))
	}

	g := make(Grid, len(codes))
	for r, row := range codes {
		g[r] = make([]Cell, width)
		for c, code := range row {
			cell, err := DecodeCell(code)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			g[r][c] = cell
		}
	}
	return g, nil
}

// MustDecodeGrid is DecodeGrid for literal layouts. It panics on a bad code.
func MustDecodeGrid(codes [][]int) Grid {
	g, err := DecodeGrid(codes)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseRows builds a Grid from the ASCII legend:
//
//	'.' or ' ' = empty
//	'1'-'9'    = destructible block with that many hit points
//	'#'        = wall
//	'X'        = obstacle
func ParseRows(lines []string) (Grid, error) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	g := make(Grid, len(lines))
	for r, line := range lines {
		g[r] = make([]Cell, width)
		for c := range len(line) {
			ch := line[c]
			switch {
			case ch == '.' || ch == ' ':
			case ch >= '1' && ch <= '9':
				g[r][c] = Cell{Kind: CellDestructible, HP: int(ch - '0')}
			case ch == '#':
				g[r][c] = Cell{Kind: CellIndestructible, HP: -1}
			case ch == 'X' || ch == 'x':
				g[r][c] = Cell{Kind: CellObstacle, HP: ObstacleHealth}
			default:
				return nil, fmt.Errorf("levels: row %d col %d: unknown glyph %q", r, c, ch)
			}
		}
	}
	return g, nil
}

// Width returns the column count.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the row count.
func (g Grid) Height() int {
	return len(g)
}

// Occupied counts cells that produce a block.
func (g Grid) Occupied() int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c.Occupied() {
				n++
			}
		}
	}
	return n
}

// Scoring counts cells that produce a scoring block.
func (g Grid) Scoring() int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c.Scoring() {
				n++
			}
		}
	}
	return n
}

// Codes returns the raw grid codes.
func (g Grid) Codes() [][]int {
	out := make([][]int, len(g))
	for r, row := range g {
		out[r] = make([]int, len(row))
		for c, cell := range row {
			out[r][c] = cell.Code()
		}
	}
	return out
}

// Rows renders the grid back to the ASCII legend.
func (g Grid) Rows() []string {
	out := make([]string, len(g))
	for r, row := range g {
		b := make([]byte, len(row))
		for c, cell := range row {
			b[c] = cell.Glyph()
		}
		out[r] = string(b)
	}
	return out
}
