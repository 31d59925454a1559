package core

// Color is a logical foreground colour for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorOrange
	ColorGray
)

// blockPalette is indexed by remaining hit points, weakest first.
var blockPalette = []Color{ColorGreen, ColorCyan, ColorBlue, ColorMagenta, ColorRed, ColorOrange}

// HealthColor picks a colour for a destructible block with hp hit points left.
// Values beyond the palette reuse its last entry.
func HealthColor(hp int) Color {
	if hp <= 0 {
		return ColorDefault
	}
	if hp > len(blockPalette) {
		return blockPalette[len(blockPalette)-1]
	}
	return blockPalette[hp-1]
}
