package world

import "github.com/gdamore/tcell/v2"

// TileKind identifies what a tile is for traversal purposes. Portal
// markers (destination, cost, mask, cooldown) are kept on the layer,
// keyed by coordinate; the tile itself only carries the kind.
type TileKind uint8

const (
	KindWall TileKind = iota
	KindFloor
	KindHazard
	KindStairUp
	KindStairDown
	KindPortal
)

// Tile is one cell of a materialized layer. Value type; its identity is
// its coordinate on the layer.
type Tile struct {
	Glyph       rune
	FG, BG      tcell.Color
	BlocksMove  bool
	BlocksSight bool
	Kind        TileKind
}

var wallColor = tcell.NewRGBColor(90, 90, 90)

func wallTile() Tile {
	return Tile{Glyph: '#', FG: wallColor, BG: tcell.ColorBlack, BlocksMove: true, BlocksSight: true, Kind: KindWall}
}

func floorTile(fg tcell.Color) Tile {
	return Tile{Glyph: '.', FG: fg, BG: tcell.ColorBlack, Kind: KindFloor}
}

func stairUpTile(fg tcell.Color) Tile {
	return Tile{Glyph: '<', FG: fg, BG: tcell.ColorBlack, Kind: KindStairUp}
}

func stairDownTile(fg tcell.Color) Tile {
	return Tile{Glyph: '>', FG: fg, BG: tcell.ColorBlack, Kind: KindStairDown}
}

func portalTile(fg tcell.Color) Tile {
	return Tile{Glyph: 'O', FG: fg, BG: tcell.ColorBlack, Kind: KindPortal}
}

// IsStair reports whether the tile is a stair of either direction.
func (t Tile) IsStair() bool {
	return t.Kind == KindStairUp || t.Kind == KindStairDown
}
