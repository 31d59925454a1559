package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCell(t *testing.T) {
	tests := []struct {
		code int
		want Cell
	}{
		{0, Cell{Kind: CellEmpty}},
		{1, Cell{Kind: CellDestructible, HP: 1}},
		{7, Cell{Kind: CellDestructible, HP: 7}},
		{-1, Cell{Kind: CellIndestructible, HP: -1}},
		{-2, Cell{Kind: CellObstacle, HP: ObstacleHealth}},
	}
	for _, tt := range tests {
		got, err := DecodeCell(tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "code %d", tt.code)
		assert.Equal(t, tt.code, got.Code(), "round trip of %d", tt.code)
	}

	_, err := DecodeCell(-3)
	assert.ErrorIs(t, err, ErrBadCode)
}

func TestCellScoring(t *testing.T) {
	assert.True(t, Cell{Kind: CellDestructible, HP: 2}.Scoring())
	assert.False(t, Cell{Kind: CellObstacle, HP: 3}.Scoring())
	assert.False(t, Cell{Kind: CellIndestructible, HP: -1}.Scoring())
	assert.False(t, Cell{}.Occupied())
}

func TestParseRowsMatchesCodes(t *testing.T) {
	g, err := ParseRows([]string{"1.#X", "9"})
	require.NoError(t, err)

	assert.Equal(t, [][]int{{1, 0, -1, -2}, {9, 0, 0, 0}}, g.Codes())
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 4, g.Occupied())
	assert.Equal(t, 2, g.Scoring())
	assert.Equal(t, []string{"1.#X", "9..."}, g.Rows())

	_, err = ParseRows([]string{"1?"})
	assert.Error(t, err)
}

func TestBuiltinCatalogValid(t *testing.T) {
	c := Builtin()
	require.NoError(t, c.Validate())
	require.Greater(t, c.Len(), 1)

	ids := make(map[string]bool)
	for _, l := range c.Levels() {
		assert.False(t, ids[l.ID], "duplicate id %s", l.ID)
		ids[l.ID] = true
		assert.Equal(t, GridHeight, l.Grid.Height(), l.ID)
		assert.Equal(t, GridWidth, l.Grid.Width(), l.ID)
	}
}

func TestCatalogWraps(t *testing.T) {
	c := Builtin()
	n := c.Len()

	assert.Equal(t, c.Level(0).ID, c.Level(n).ID)
	assert.Equal(t, c.Level(n-1).ID, c.Level(-1).ID)
	assert.Equal(t, 0, c.Next(n-1))
	assert.Equal(t, 1, c.Next(0))
}

func TestCatalogValidateRejects(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	small := Level{ID: "small", Grid: MustDecodeGrid([][]int{{1, 1}, {0, 0}})}
	_, err = NewCatalog([]Level{small})
	assert.ErrorIs(t, err, ErrGridSize)

	walls := make([]string, GridHeight)
	for i := range walls {
		walls[i] = "#........#"
	}
	g, err := ParseRows(walls)
	require.NoError(t, err)
	_, err = NewCatalog([]Level{{ID: "walls", Grid: g}})
	assert.ErrorIs(t, err, ErrNoScoring)
}

func TestCheckLattice(t *testing.T) {
	assert.NoError(t, CheckLattice(8, 2))
	assert.NoError(t, CheckLattice(8, 3.99))
	assert.ErrorIs(t, CheckLattice(8, 4), ErrLattice)
	assert.ErrorIs(t, CheckLattice(8, 6), ErrLattice)
	assert.ErrorIs(t, CheckLattice(0, 1), ErrLattice)
}

const yamlLevel = `id: a-stripes
name: Stripes
rows:
  - "1111111111"
  - ".........."
  - "2222222222"
  - ".........."
  - "#........#"
  - ".........."
  - ".........."
  - ".........."
`

const tomlLevel = `id = "b-codes"
name = "Codes"
cells = [
  [1, 1, 1, 1, 1, 1, 1, 1, 1, 1],
  [0, 0, 0, 0, 0, 0, 0, 0, 0, 0],
  [-2, 0, 0, 0, 0, 0, 0, 0, 0, -2],
  [0, 0, 0, 0, 0, 0, 0, 0, 0, 0],
  [0, 0, 0, 0, 0, 0, 0, 0, 0, 0],
  [0, 0, 0, 0, 0, 0, 0, 0, 0, 0],
  [0, 0, 0, 0, 0, 0, 0, 0, 0, 0],
  [0, 0, 0, 0, 0, 0, 0, 0, 0, 0],
]
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()

	y, err := LoadFile(writeFile(t, dir, "stripes.yaml", yamlLevel))
	require.NoError(t, err)
	assert.Equal(t, "Stripes", y.Name)
	assert.Equal(t, 20, y.Grid.Scoring())
	assert.Equal(t, CellIndestructible, y.Grid[4][0].Kind)

	tm, err := LoadFile(writeFile(t, dir, "codes.toml", tomlLevel))
	require.NoError(t, err)
	assert.Equal(t, "b-codes", tm.ID)
	assert.Equal(t, CellObstacle, tm.Grid[2][9].Kind)
	assert.Equal(t, 12, tm.Grid.Occupied())
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(writeFile(t, dir, "unknown.toml", "id = \"x\"\nspeed = 3\nrows = [\"1\"]\n"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, dir, "noid.yaml", "rows: [\"1\"]\n"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, dir, "short.yaml", "id: short\nrows: [\"1111111111\"]\n"))
	assert.ErrorIs(t, err, ErrGridSize)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadPackDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2.toml", tomlLevel)
	writeFile(t, dir, "1.yaml", yamlLevel)
	writeFile(t, dir, "bad.yml", "id: bad\nrows: [\"1\"]\n")
	writeFile(t, dir, "dup.yaml", yamlLevel)
	writeFile(t, dir, "notes.txt", "ignored")

	pack, err := LoadPack(dir)
	require.NoError(t, err)
	require.Equal(t, 2, pack.Catalog.Len())
	assert.Equal(t, "a-stripes", pack.Catalog.Level(0).ID)
	assert.Equal(t, "b-codes", pack.Catalog.Level(1).ID)
	assert.Len(t, pack.Problems, 2)
}

func TestLoadPackSingleFileAndEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.yaml", yamlLevel)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	empty := t.TempDir()
	_, err = LoadPack(empty)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Builtin().Len(), c.Len())
}
