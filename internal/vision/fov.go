// Package vision computes line-of-sight and tracks what an actor has
// seen on each (floor, world) layer.
package vision

import "github.com/samdwyer/prismrogue/internal/world"

// Grid is the minimal surface the shadowcaster needs from a map layer.
type Grid interface {
	InBounds(x, y int) bool
	BlocksSight(x, y int) bool
}

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//   worldX = cx + dx*xx + dy*xy
//   worldY = cy + dx*yx + dy*yy
// These match the standard RogueBasin recursive shadowcasting multipliers.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Compute returns the set of tiles visible from origin within radius,
// using sight-blocking tiles as occluders. The origin is always visible.
func Compute(g Grid, origin world.Point, radius int) map[world.Point]struct{} {
	visible := make(map[world.Point]struct{})
	if g.InBounds(origin.X, origin.Y) {
		visible[origin] = struct{}{}
	}
	for _, m := range octants {
		castLight(g, visible, origin.X, origin.Y, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3])
	}
	return visible
}

// castLight casts light for one octant using recursive shadowcasting.
// j is the row distance from the origin along the octant's main axis;
// dx sweeps -j..0 within the row, and the slope bounds start/end narrow
// as walls cast shadows.
func castLight(g Grid, visible map[world.Point]struct{}, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && g.InBounds(wx, wy) {
				visible[world.Point{X: wx, Y: wy}] = struct{}{}
			}

			opaque := !g.InBounds(wx, wy) || g.BlocksSight(wx, wy)

			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(g, visible, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
