package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file. Keys the level format does not know are rejected.
func ParseTOML(data []byte) (Raw, error) {
	var r Raw
	md, err := toml.Decode(string(data), &r)
	if err != nil {
		return Raw{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Raw{}, fmt.Errorf("toml: unknown key %q", undecoded[0].String())
	}
	return r, r.check()
}
