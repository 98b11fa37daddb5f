package world

import (
	"github.com/aquilax/go-perlin"
)

const (
	// At most this fraction of a layer's floor tiles may flip from
	// walkable to blocked during hazard stamping. Keeps per-world
	// stamping from sealing off the substrate's connectivity outright;
	// the validator still has the final word.
	maxBlockedFraction = 0.15

	// Perlin tuning for hazard fields.
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseScale   = 10.0
)

// MapLayer is one world's materialized tile grid over a substrate.
// Mutable only during generation; read-only thereafter.
type MapLayer struct {
	World         World
	Width, Height int
	Tiles         []Tile

	portals map[Point]PortalMarker
}

func newMapLayer(w World, width, height int) MapLayer {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = wallTile()
	}
	return MapLayer{
		World:   w,
		Width:   width,
		Height:  height,
		Tiles:   tiles,
		portals: make(map[Point]PortalMarker),
	}
}

// MaterializeLayer transforms a substrate into one world's tile grid:
// base walls/floors from the skeleton, stairs, then a deterministic
// noise-driven hazard pass unique to that world. Same inputs always
// produce the same layer.
func MaterializeLayer(sub *Substrate, w World, seed int64, style LayerStyle) MapLayer {
	layer := newMapLayer(w, sub.Width, sub.Height)

	for _, room := range sub.Rooms {
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				layer.SetTile(Point{X: x, Y: y}, floorTile(style.FloorColor))
			}
		}
	}
	for _, corridor := range sub.Corridors {
		for _, p := range corridor {
			layer.SetTile(p, floorTile(style.FloorColor))
		}
	}
	for _, p := range sub.StairUp {
		layer.SetTile(p, stairUpTile(style.FloorColor))
	}
	for _, p := range sub.StairDown {
		layer.SetTile(p, stairDownTile(style.FloorColor))
	}

	layer.stampHazards(sub, seed, style)
	return layer
}

// stampHazards runs the per-world transform: a perlin field salted by
// the world index tags high-noise floor tiles as hazardous. The very
// highest band additionally blocks movement, capped at
// maxBlockedFraction of the layer's floor tiles. Stairs and the spawn
// tile are never stamped.
func (l *MapLayer) stampHazards(sub *Substrate, seed int64, style LayerStyle) {
	if style.HazardDensity <= 0 {
		return
	}
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, mixSeed(seed, int64(l.World.Index())+101))

	floorCount := 0
	for _, t := range l.Tiles {
		if t.Kind == KindFloor {
			floorCount++
		}
	}
	blockBudget := int(maxBlockedFraction * float64(floorCount))

	hazardCut := 1.0 - style.HazardDensity
	blockCut := 1.0 - style.HazardDensity*0.35

	blocked := 0
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			p := Point{X: x, Y: y}
			if l.TileAt(x, y).Kind != KindFloor || p == sub.Spawn {
				continue
			}
			// Noise2D rarely leaves ±0.7 in practice; fold that band
			// into 0..1 so density thresholds bite.
			n := (noise.Noise2D(float64(x)/noiseScale, float64(y)/noiseScale) + 0.7) / 1.4
			if n < 0 {
				n = 0
			} else if n > 1 {
				n = 1
			}
			if n <= hazardCut {
				continue
			}
			tile := Tile{
				Glyph:       style.HazardGlyph,
				FG:          style.HazardColor,
				BG:          l.TileAt(x, y).BG,
				Kind:        KindHazard,
				BlocksSight: style.HazardOpaque,
			}
			if n > blockCut && blocked < blockBudget {
				tile.BlocksMove = true
				blocked++
			}
			l.SetTile(p, tile)
		}
	}
}

func (l *MapLayer) idx(x, y int) int {
	return y*l.Width + x
}

// InBounds reports whether (x, y) is within the layer.
func (l *MapLayer) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// TileAt returns the tile at the given position, or a wall for
// out-of-bounds coordinates.
func (l *MapLayer) TileAt(x, y int) Tile {
	if !l.InBounds(x, y) {
		return wallTile()
	}
	return l.Tiles[l.idx(x, y)]
}

// SetTile replaces the tile at the given position. No-op out of bounds.
func (l *MapLayer) SetTile(p Point, t Tile) {
	if !l.InBounds(p.X, p.Y) {
		return
	}
	l.Tiles[l.idx(p.X, p.Y)] = t
}

// IsWalkable returns true when (x, y) is in bounds and not move-blocked.
func (l *MapLayer) IsWalkable(x, y int) bool {
	return l.InBounds(x, y) && !l.Tiles[l.idx(x, y)].BlocksMove
}

// BlocksSight returns true when (x, y) occludes line of sight.
// Out-of-bounds coordinates occlude.
func (l *MapLayer) BlocksSight(x, y int) bool {
	return !l.InBounds(x, y) || l.Tiles[l.idx(x, y)].BlocksSight
}

// PortalAt returns the portal marker at p, if any.
func (l *MapLayer) PortalAt(p Point) (PortalMarker, bool) {
	m, ok := l.portals[p]
	return m, ok
}

// Portals returns the layer's portal coordinates in no particular order.
func (l *MapLayer) Portals() []Point {
	points := make([]Point, 0, len(l.portals))
	for p := range l.portals {
		points = append(points, p)
	}
	return points
}

// FirstWalkable returns the first walkable point in scan order, or
// false when the layer has none.
func (l *MapLayer) FirstWalkable() (Point, bool) {
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.IsWalkable(x, y) {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}
