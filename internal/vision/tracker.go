package vision

import "github.com/samdwyer/prismrogue/internal/world"

// layerKey addresses one (floor, world) visibility set.
type layerKey struct {
	Floor world.FloorID
	World world.World
}

// Tracker keeps a persistent, monotonically growing "seen" set per
// (floor, world) pair for the run's lifetime. Only the active layer is
// ever recomputed; switching worlds leaves the previous layer's record
// untouched until it becomes active again.
type Tracker struct {
	seen map[layerKey]map[world.Point]struct{}
}

// NewTracker returns an empty tracker. Sets are created lazily on first
// visit to a (floor, world) pair.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[layerKey]map[world.Point]struct{})}
}

// Update recomputes visibility from origin on the given layer and
// unions the result into that layer's seen set. It returns the tiles
// currently visible and how many of them were newly revealed.
func (t *Tracker) Update(layer *world.MapLayer, floor world.FloorID, origin world.Point, radius int) (map[world.Point]struct{}, int) {
	visible := Compute(layer, origin, radius)

	key := layerKey{Floor: floor, World: layer.World}
	seen := t.seen[key]
	if seen == nil {
		seen = make(map[world.Point]struct{})
		t.seen[key] = seen
	}

	newly := 0
	for p := range visible {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			newly++
		}
	}
	return visible, newly
}

// Seen returns the persistent seen set for a (floor, world) pair. The
// returned map is live; callers must treat it as read-only.
func (t *Tracker) Seen(floor world.FloorID, w world.World) map[world.Point]struct{} {
	return t.seen[layerKey{Floor: floor, World: w}]
}

// SeenCount returns how many tiles have ever been seen on a pair.
func (t *Tracker) SeenCount(floor world.FloorID, w world.World) int {
	return len(t.seen[layerKey{Floor: floor, World: w}])
}
