package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or
// "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color,
// panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// Dim blends a color toward black. The renderer uses this for tiles
// that were seen on an earlier turn but are outside the current field
// of view. amount 0 leaves the color untouched; 1 is black.
func Dim(color tcell.Color, amount float64) tcell.Color {
	r, g, b := color.RGB()
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	dimmed := c.BlendRgb(colorful.Color{}, amount)
	dr, dg, db := dimmed.RGB255()
	return tcell.NewRGBColor(int32(dr), int32(dg), int32(db))
}
