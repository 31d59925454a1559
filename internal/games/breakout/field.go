// Package breakout implements a Breakout/Arkanoid-style brick breaker game.
package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
)

// Block is one brick on the lattice. Blocks are never removed from the field;
// a destroyed block keeps its slot with Health == 0.
type Block struct {
	Row, Col int
	X, Y     float64 // Top-left corner in playfield pixels
	W, H     float64
	Kind     levels.CellKind
	Health   int // >0 hit points, 0 destroyed, -1 wall
	Value    int // Starting hit points, the base score for a hit
	NoValue  bool
}

// Live reports whether the block still takes part in collisions.
func (b *Block) Live() bool {
	return b.Health != 0
}

// Box returns the block's bounding box.
func (b *Block) Box() core.Box {
	return core.BoxAt(b.X, b.Y, b.W, b.H)
}

// HitResult describes the outcome of ApplyHit.
type HitResult struct {
	Scoring   bool // Hit counts towards score and combo
	Destroyed bool // Health went to exactly 0 on this hit
}

// BlockField holds the blocks generated from a level grid.
type BlockField struct {
	blocks   []Block
	index    [][]int // [row][col] -> position in blocks, -1 for empty cells
	cellSize float64
}

// NewBlockField creates an empty field.
func NewBlockField() *BlockField {
	return &BlockField{}
}

// Load clears the field and creates one block per occupied cell of grid.
// Blocks are 2*cellSize wide and cellSize tall, placed at
// (col*2*cellSize, (row+1.5)*cellSize).
func (f *BlockField) Load(grid levels.Grid, cellSize float64) {
	f.cellSize = cellSize
	f.blocks = f.blocks[:0]
	f.index = make([][]int, grid.Height())

	for row, cells := range grid {
		f.index[row] = make([]int, len(cells))
		for col, cell := range cells {
			f.index[row][col] = -1
			if !cell.Occupied() {
				continue
			}
			f.index[row][col] = len(f.blocks)
			f.blocks = append(f.blocks, newBlock(row, col, cell, cellSize))
		}
	}
}

func newBlock(row, col int, cell levels.Cell, cellSize float64) Block {
	b := Block{
		Row:    row,
		Col:    col,
		X:      float64(col) * 2 * cellSize,
		Y:      (float64(row) + 1.5) * cellSize,
		W:      2 * cellSize,
		H:      cellSize,
		Kind:   cell.Kind,
		Health: cell.HP,
	}
	switch cell.Kind {
	case levels.CellDestructible:
		b.Value = cell.HP
	case levels.CellIndestructible:
		b.Health = -1
		b.NoValue = true
	case levels.CellObstacle:
		b.Health = levels.ObstacleHealth
		b.NoValue = true
	}
	return b
}

// Len returns the number of blocks, destroyed ones included.
func (f *BlockField) Len() int {
	return len(f.blocks)
}

// Remaining counts live scoring blocks. A level is cleared when it reaches 0.
func (f *BlockField) Remaining() int {
	n := 0
	for i := range f.blocks {
		if f.blocks[i].Health > 0 && !f.blocks[i].NoValue {
			n++
		}
	}
	return n
}

// ApplyHit damages b. Walls and destroyed blocks are left unchanged.
func (f *BlockField) ApplyHit(b *Block) HitResult {
	if b.Health <= 0 {
		return HitResult{}
	}
	b.Health--
	return HitResult{
		Scoring:   !b.NoValue,
		Destroyed: b.Health == 0,
	}
}

// At returns the block at (row, col), or nil if the cell is empty or off the grid.
func (f *BlockField) At(row, col int) *Block {
	if row < 0 || row >= len(f.index) || col < 0 || col >= len(f.index[row]) {
		return nil
	}
	i := f.index[row][col]
	if i < 0 {
		return nil
	}
	return &f.blocks[i]
}

// Blocks returns the blocks in creation order. Callers must not modify them.
func (f *BlockField) Blocks() []Block {
	return f.blocks
}

// CellOf returns the top-left cell of the 2x2 neighbourhood that can contain
// a ball centred at (x, y).
func (f *BlockField) CellOf(x, y float64) (row, col int) {
	c := f.cellSize
	return floorInt((y - 2*c) / c), floorInt((x - 0.5*c) / (2 * c))
}
