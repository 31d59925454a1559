package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels/formats"
)

// LoadFile loads and validates a single level file.
func LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	raw, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	var grid Grid
	if len(raw.Rows) > 0 {
		grid, err = ParseRows(raw.Rows)
	} else {
		grid, err = DecodeGrid(raw.Cells)
	}
	if err != nil {
		return Level{}, fmt.Errorf("levels: decoding %s: %w", path, err)
	}

	name := raw.Name
	if name == "" {
		name = raw.ID
	}
	lvl := Level{ID: raw.ID, Name: name, Grid: grid, Source: path}
	if err := lvl.Validate(); err != nil {
		return Level{}, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// Pack is the result of loading a level pack.
type Pack struct {
	Catalog  *Catalog
	Problems []error // Files that were skipped, one error each
}

// LoadPack loads a single level file or every supported file under a directory.
// Directory entries are sorted by ID; invalid files are skipped and reported in Problems.
func LoadPack(path string) (Pack, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Pack{}, fmt.Errorf("levels: %w", err)
	}

	if !info.IsDir() {
		lvl, err := LoadFile(path)
		if err != nil {
			return Pack{}, err
		}
		return Pack{Catalog: &Catalog{levels: []Level{lvl}}}, nil
	}

	var (
		loaded   []Level
		problems []error
		seen     = make(map[string]string)
	)
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(p))) {
			return nil
		}

		lvl, err := LoadFile(p)
		if err != nil {
			problems = append(problems, err)
			return nil
		}
		if prev, dup := seen[lvl.ID]; dup {
			problems = append(problems, fmt.Errorf("levels: %s: duplicate id %q (first in %s)", p, lvl.ID, prev))
			return nil
		}
		seen[lvl.ID] = p
		loaded = append(loaded, lvl)
		return nil
	})
	if err != nil {
		return Pack{}, fmt.Errorf("levels: walking directory %s: %w", path, err)
	}

	slices.SortFunc(loaded, func(a, b Level) int {
		return strings.Compare(a.ID, b.ID)
	})

	if len(loaded) == 0 {
		return Pack{Problems: problems}, fmt.Errorf("%w: no valid levels in %s", ErrEmptyCatalog, path)
	}
	return Pack{Catalog: &Catalog{levels: loaded}, Problems: problems}, nil
}

// Load returns the built-in catalog when path is empty, otherwise the pack at path.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	pack, err := LoadPack(path)
	if err != nil {
		return nil, err
	}
	return pack.Catalog, nil
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}
