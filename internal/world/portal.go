package world

import (
	"fmt"
	"math/rand"
)

const (
	portalEnergyCost    = 2
	portalCooldownTurns = 8
)

// PortalMarker describes a portal tile: where it leads, what it costs,
// the attunement bits required to use it, and how long it stays on
// cooldown after a crossing. The paired tile on the destination layer
// occupies the same floor coordinate.
type PortalMarker struct {
	Dest     World
	Cost     int
	KeyMask  uint8
	Cooldown int // turns
}

// PlacePortals inserts one portal pair per adjacent-world link, forming
// a ring (Red↔Orange, Orange↔Yellow, …, Violet↔Red). Each pair occupies
// a single coordinate that is a plain, reachable floor tile on both
// member layers; the written portal tiles never block movement or sight.
func PlacePortals(layers *[WorldCount]MapLayer, sub *Substrate, seed int64, styles *[WorldCount]LayerStyle) error {
	rng := rand.New(rand.NewSource(mixSeed(seed, 0x9027)))

	// Candidates in deterministic scan order, then shuffled so portals
	// don't cluster in the top-left room.
	var candidates []Point
	for y := 0; y < sub.Height; y++ {
		for x := 0; x < sub.Width; x++ {
			p := Point{X: x, Y: y}
			if sub.Carved(p) {
				candidates = append(candidates, p)
			}
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// Reachability from room interiors, per layer. Portal tiles stay
	// walkable, so these sets remain valid as pairs are written.
	var reach [WorldCount]map[Point]struct{}
	for i := range layers {
		reach[i] = reachableFrom(&layers[i], roomSeeds(&layers[i], sub))
	}

	for _, a := range Spectrum {
		b := a.Next()
		la, lb := &layers[a.Index()], &layers[b.Index()]

		placed := false
		for _, p := range candidates {
			if la.TileAt(p.X, p.Y).Kind != KindFloor || lb.TileAt(p.X, p.Y).Kind != KindFloor {
				continue // hazardous, stair, or already a portal on one side
			}
			if _, ok := reach[a.Index()][p]; !ok {
				continue
			}
			if _, ok := reach[b.Index()][p]; !ok {
				continue
			}

			la.SetTile(p, portalTile(styles[b.Index()].FloorColor))
			la.portals[p] = PortalMarker{
				Dest:     b,
				Cost:     portalEnergyCost,
				KeyMask:  styles[b.Index()].PortalMask,
				Cooldown: portalCooldownTurns,
			}
			lb.SetTile(p, portalTile(styles[a.Index()].FloorColor))
			lb.portals[p] = PortalMarker{
				Dest:     a,
				Cost:     portalEnergyCost,
				KeyMask:  styles[a.Index()].PortalMask,
				Cooldown: portalCooldownTurns,
			}
			placed = true
			break
		}
		if !placed {
			return fmt.Errorf("%w: no shared floor tile for %s<->%s", ErrPlacementFailed, a, b)
		}
	}
	return nil
}

// roomSeeds returns the room-center tiles that are walkable on the given
// layer. Hazard stamping can block individual centers; any one open
// center is enough to seed a reachability scan.
func roomSeeds(l *MapLayer, sub *Substrate) []Point {
	var seeds []Point
	for _, room := range sub.Rooms {
		c := room.Center()
		if l.IsWalkable(c.X, c.Y) {
			seeds = append(seeds, c)
		}
	}
	return seeds
}
