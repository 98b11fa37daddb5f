package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/prismrogue/internal/world"
)

// stubGrid is a rectangular grid with an explicit set of occluders.
type stubGrid struct {
	width, height int
	opaque        map[world.Point]struct{}
}

func newStubGrid(width, height int) *stubGrid {
	return &stubGrid{width: width, height: height, opaque: make(map[world.Point]struct{})}
}

func (g *stubGrid) wall(x, y int) {
	g.opaque[world.Point{X: x, Y: y}] = struct{}{}
}

func (g *stubGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *stubGrid) BlocksSight(x, y int) bool {
	_, ok := g.opaque[world.Point{X: x, Y: y}]
	return ok
}

func TestComputeOriginAlwaysVisible(t *testing.T) {
	g := newStubGrid(10, 10)
	origin := world.Point{X: 5, Y: 5}

	visible := Compute(g, origin, 0)
	assert.Contains(t, visible, origin)
}

func TestComputeOpenRoom(t *testing.T) {
	g := newStubGrid(20, 20)
	origin := world.Point{X: 10, Y: 10}

	visible := Compute(g, origin, 4)

	// Nothing occludes, so every orthogonal neighbor within the radius
	// is lit.
	for d := 1; d < 4; d++ {
		assert.Contains(t, visible, world.Point{X: 10 + d, Y: 10})
		assert.Contains(t, visible, world.Point{X: 10 - d, Y: 10})
		assert.Contains(t, visible, world.Point{X: 10, Y: 10 + d})
		assert.Contains(t, visible, world.Point{X: 10, Y: 10 - d})
	}
	assert.NotContains(t, visible, world.Point{X: 16, Y: 10}, "beyond the radius")
}

func TestComputeWallCastsShadow(t *testing.T) {
	g := newStubGrid(20, 20)
	origin := world.Point{X: 5, Y: 10}
	g.wall(8, 10)

	visible := Compute(g, origin, 8)

	assert.Contains(t, visible, world.Point{X: 8, Y: 10}, "the wall itself is lit")
	assert.NotContains(t, visible, world.Point{X: 9, Y: 10}, "tile directly behind the wall")
	assert.NotContains(t, visible, world.Point{X: 11, Y: 10}, "deeper in the shadow")
}

func TestComputeRespectsRadius(t *testing.T) {
	g := newStubGrid(40, 40)
	origin := world.Point{X: 20, Y: 20}
	radius := 6

	visible := Compute(g, origin, radius)

	for p := range visible {
		dx, dy := p.X-origin.X, p.Y-origin.Y
		if dx*dx+dy*dy >= radius*radius && p != origin {
			t.Errorf("Tile %v lies outside radius %d", p, radius)
		}
	}
}

// openLayer builds a width x height layer of open floor surrounded by
// the implicit out-of-bounds walls.
func openLayer(w world.World, width, height int) *world.MapLayer {
	tiles := make([]world.Tile, width*height)
	for i := range tiles {
		tiles[i] = world.Tile{Glyph: '.', Kind: world.KindFloor}
	}
	return &world.MapLayer{World: w, Width: width, Height: height, Tiles: tiles}
}

func TestTrackerMonotonic(t *testing.T) {
	tr := NewTracker()
	layer := openLayer(world.Red, 30, 30)

	_, newly := tr.Update(layer, 0, world.Point{X: 5, Y: 5}, 4)
	require.Positive(t, newly)
	first := tr.SeenCount(0, world.Red)

	// Revisiting the same spot reveals nothing new.
	_, newly = tr.Update(layer, 0, world.Point{X: 5, Y: 5}, 4)
	assert.Zero(t, newly)
	assert.Equal(t, first, tr.SeenCount(0, world.Red))

	// Moving elsewhere only ever grows the set.
	_, newly = tr.Update(layer, 0, world.Point{X: 20, Y: 20}, 4)
	assert.Positive(t, newly)
	assert.Greater(t, tr.SeenCount(0, world.Red), first)
}

func TestTrackerKeysPerFloorAndWorld(t *testing.T) {
	tr := NewTracker()
	red := openLayer(world.Red, 30, 30)
	blue := openLayer(world.Blue, 30, 30)

	tr.Update(red, 0, world.Point{X: 5, Y: 5}, 4)
	assert.Zero(t, tr.SeenCount(0, world.Blue), "other worlds start unseen")
	assert.Zero(t, tr.SeenCount(1, world.Red), "other floors start unseen")

	// A world shift at the same spot re-reveals on the new layer and
	// leaves the old record untouched.
	before := tr.SeenCount(0, world.Red)
	_, newly := tr.Update(blue, 0, world.Point{X: 5, Y: 5}, 4)
	assert.Positive(t, newly)
	assert.Equal(t, before, tr.SeenCount(0, world.Red))
}

func TestTrackerSeenIsSharedAcrossUpdates(t *testing.T) {
	tr := NewTracker()
	layer := openLayer(world.Green, 30, 30)

	visible, _ := tr.Update(layer, 2, world.Point{X: 10, Y: 10}, 3)
	seen := tr.Seen(2, world.Green)
	require.NotNil(t, seen)

	for p := range visible {
		assert.Contains(t, seen, p)
	}
}
