package gamedata

import (
	"fmt"

	"github.com/samdwyer/prismrogue/internal/world"
)

// WorldDef defines one of the seven worlds, loaded from worlds.json.
// Order in the file is spectrum order (Red first).
type WorldDef struct {
	ID            string  `json:"id"`            // Stable identifier (e.g., "red")
	Name          string  `json:"name"`          // Display name
	Color         string  `json:"color"`         // Floor tint as hex (e.g., "#FF5F56")
	HazardColor   string  `json:"hazardColor"`   // Hazard tint as hex
	HazardGlyph   string  `json:"hazardGlyph"`   // Single character for hazard tiles
	HazardDensity float64 `json:"hazardDensity"` // Fraction of floor tiles stamped, 0..1
	HazardOpaque  bool    `json:"hazardOpaque"`  // Hazards occlude sight in this world
	PortalMask    uint8   `json:"portalMask"`    // Attunement bits required to portal in
	Note          string  `json:"note"`          // Lore line for the message log
}

// GlyphRune returns the hazard glyph as a rune for rendering.
func (d *WorldDef) GlyphRune() rune {
	if len(d.HazardGlyph) == 0 {
		return '%'
	}
	return rune(d.HazardGlyph[0])
}

// WorldsFile represents the structure of worlds.json.
type WorldsFile struct {
	Worlds []WorldDef `json:"worlds"`
}

// LoadWorlds loads the seven world definitions from the embedded
// worlds.json, in spectrum order.
func LoadWorlds() ([]WorldDef, error) {
	file, err := Load[WorldsFile]("worlds.json")
	if err != nil {
		return nil, err
	}
	if len(file.Worlds) != world.WorldCount {
		return nil, fmt.Errorf("worlds.json defines %d worlds, want %d", len(file.Worlds), world.WorldCount)
	}
	return file.Worlds, nil
}

// MustLoadWorlds loads world definitions, panicking on error.
func MustLoadWorlds() []WorldDef {
	defs, err := LoadWorlds()
	if err != nil {
		panic(err)
	}
	return defs
}

// Styles converts loaded definitions into the layer styles the
// generation pipeline consumes.
func Styles(defs []WorldDef) ([world.WorldCount]world.LayerStyle, error) {
	var styles [world.WorldCount]world.LayerStyle
	if len(defs) != world.WorldCount {
		return styles, fmt.Errorf("got %d world defs, want %d", len(defs), world.WorldCount)
	}
	for i, def := range defs {
		floorColor, err := ParseHexColor(def.Color)
		if err != nil {
			return styles, fmt.Errorf("world %s: %w", def.ID, err)
		}
		hazardColor, err := ParseHexColor(def.HazardColor)
		if err != nil {
			return styles, fmt.Errorf("world %s: %w", def.ID, err)
		}
		styles[i] = world.LayerStyle{
			FloorColor:    floorColor,
			HazardColor:   hazardColor,
			HazardGlyph:   def.GlyphRune(),
			HazardDensity: def.HazardDensity,
			HazardOpaque:  def.HazardOpaque,
			PortalMask:    def.PortalMask,
		}
	}
	return styles, nil
}
