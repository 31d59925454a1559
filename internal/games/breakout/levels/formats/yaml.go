// Package formats provides pluggable level file format parsers.
// Parsers return raw rows; decoding into cells is left to the levels package.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Raw is a parsed but undecoded level file.
// Rows use the ASCII legend; Cells holds raw integer codes. A file sets one of them.
type Raw struct {
	ID    string   `yaml:"id" toml:"id"`
	Name  string   `yaml:"name" toml:"name"`
	Rows  []string `yaml:"rows,omitempty" toml:"rows,omitempty"`
	Cells [][]int  `yaml:"cells,omitempty" toml:"cells,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Raw, error) {
	var r Raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Raw{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return r, r.check()
}

func (r Raw) check() error {
	if r.ID == "" {
		return errors.New("missing id")
	}
	if len(r.Rows) > 0 && len(r.Cells) > 0 {
		return fmt.Errorf("level %s sets both rows and cells", r.ID)
	}
	if len(r.Rows) == 0 && len(r.Cells) == 0 {
		return fmt.Errorf("level %s has no rows", r.ID)
	}
	return nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// Parse routes data to the parser for ext.
func Parse(data []byte, ext string) (Raw, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return Raw{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
