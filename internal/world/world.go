// Package world provides the shared floor substrate, its seven materialized
// layers, and the dungeon store that generates floors on first descent.
package world

import "github.com/gdamore/tcell/v2"

// World is one of the seven parallel layers a floor exists on. The zero
// value is Red. Worlds are totally ordered so layer arrays can be indexed
// by Index() and cycled deterministically.
type World int

const (
	Red World = iota
	Orange
	Yellow
	Green
	Blue
	Indigo
	Violet

	// WorldCount is the number of parallel worlds per floor.
	WorldCount = 7
)

// Spectrum lists all worlds in ring order. Portal pairing and layer
// iteration both follow this order.
var Spectrum = [WorldCount]World{Red, Orange, Yellow, Green, Blue, Indigo, Violet}

// String returns the world's display name.
func (w World) String() string {
	switch w {
	case Red:
		return "Red"
	case Orange:
		return "Orange"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Indigo:
		return "Indigo"
	case Violet:
		return "Violet"
	default:
		return "unknown"
	}
}

// Index returns the world's position in the spectrum, suitable for
// indexing a [WorldCount] layer array.
func (w World) Index() int {
	return int(w)
}

// Cycle returns the world delta steps around the spectrum ring. Negative
// deltas cycle backwards; the result always wraps into range.
func (w World) Cycle(delta int) World {
	n := (int(w) + delta) % WorldCount
	if n < 0 {
		n += WorldCount
	}
	return World(n)
}

// Next returns the adjacent world in ring order. Portal pairs link each
// world to its Next.
func (w World) Next() World {
	return w.Cycle(1)
}

// LayerStyle controls how one world's layer is materialized: floor tint,
// hazard glyph and colors, how dense the hazard stamping runs, whether
// hazards occlude sight, and the attunement mask required to portal into
// this world.
type LayerStyle struct {
	FloorColor    tcell.Color
	HazardColor   tcell.Color
	HazardGlyph   rune
	HazardDensity float64 // fraction of floor tiles stamped hazardous, 0..1
	HazardOpaque  bool    // hazards block sight in this world
	PortalMask    uint8   // key/attunement bits required to enter this world
}

// DefaultStyles returns the built-in per-world styles. The gamedata
// package can override these from worlds.json; tests and headless use
// rely on the defaults.
func DefaultStyles() [WorldCount]LayerStyle {
	return [WorldCount]LayerStyle{
		Red:    {FloorColor: tcell.NewRGBColor(255, 95, 86), HazardColor: tcell.NewRGBColor(170, 40, 30), HazardGlyph: '^', HazardDensity: 0.10},
		Orange: {FloorColor: tcell.NewRGBColor(255, 170, 64), HazardColor: tcell.NewRGBColor(180, 110, 20), HazardGlyph: '~', HazardDensity: 0.12, HazardOpaque: true},
		Yellow: {FloorColor: tcell.NewRGBColor(241, 241, 87), HazardColor: tcell.NewRGBColor(160, 160, 40), HazardGlyph: '*', HazardDensity: 0.06},
		Green:  {FloorColor: tcell.NewRGBColor(126, 211, 33), HazardColor: tcell.NewRGBColor(60, 130, 20), HazardGlyph: '"', HazardDensity: 0.14},
		Blue:   {FloorColor: tcell.NewRGBColor(96, 165, 255), HazardColor: tcell.NewRGBColor(40, 90, 170), HazardGlyph: '~', HazardDensity: 0.10},
		Indigo: {FloorColor: tcell.NewRGBColor(120, 98, 240), HazardColor: tcell.NewRGBColor(70, 50, 150), HazardGlyph: '?', HazardDensity: 0.08, HazardOpaque: true},
		Violet: {FloorColor: tcell.NewRGBColor(193, 126, 255), HazardColor: tcell.NewRGBColor(110, 60, 160), HazardGlyph: '!', HazardDensity: 0.10, PortalMask: 0b001},
	}
}
