package world

import "fmt"

// ValidateWorldFloor checks the invariants the rest of the game relies
// on, per layer: every walkable tile sits in one connected component, at
// least one portal is part of that component, and so are the stair
// tiles. Portal pairs must also mirror each other across their two
// layers. Any violation discards the whole floor.
func ValidateWorldFloor(wf *WorldFloor) error {
	for _, w := range Spectrum {
		layer := wf.Layer(w)

		start, ok := layer.FirstWalkable()
		if !ok {
			return fmt.Errorf("%w: floor %d layer %s has no walkable tiles", ErrValidationFailed, wf.ID, w)
		}
		reached := reachableFrom(layer, []Point{start})

		walkable := 0
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				if layer.IsWalkable(x, y) {
					walkable++
				}
			}
		}
		if len(reached) != walkable {
			return fmt.Errorf("%w: floor %d layer %s disconnected (%d of %d walkable reached)",
				ErrValidationFailed, wf.ID, w, len(reached), walkable)
		}

		if err := portalReachable(layer, reached, wf.ID); err != nil {
			return err
		}

		for _, p := range wf.Substrate.StairDown {
			if _, ok := reached[p]; !ok {
				return fmt.Errorf("%w: floor %d layer %s down-stair %v unreachable", ErrValidationFailed, wf.ID, w, p)
			}
		}
		for _, p := range wf.Substrate.StairUp {
			if _, ok := reached[p]; !ok {
				return fmt.Errorf("%w: floor %d layer %s up-stair %v unreachable", ErrValidationFailed, wf.ID, w, p)
			}
		}
	}

	return validatePortalPairs(wf)
}

func portalReachable(layer *MapLayer, reached map[Point]struct{}, id FloorID) error {
	points := layer.Portals()
	if len(points) == 0 {
		return fmt.Errorf("%w: floor %d layer %s has no portals", ErrValidationFailed, id, layer.World)
	}
	for _, p := range points {
		if _, ok := reached[p]; ok {
			return nil
		}
	}
	return fmt.Errorf("%w: floor %d layer %s has no reachable portal", ErrValidationFailed, id, layer.World)
}

// validatePortalPairs asserts the pair contract: a portal at p on layer
// a leads to a world whose layer holds a portal back to a at the same
// coordinate, and both tiles are walkable.
func validatePortalPairs(wf *WorldFloor) error {
	for _, w := range Spectrum {
		layer := wf.Layer(w)
		for _, p := range layer.Portals() {
			marker, _ := layer.PortalAt(p)
			dest := wf.Layer(marker.Dest)
			back, ok := dest.PortalAt(p)
			if !ok || back.Dest != w {
				return fmt.Errorf("%w: floor %d portal at %v (%s->%s) has no twin", ErrValidationFailed, wf.ID, p, w, marker.Dest)
			}
			if !layer.IsWalkable(p.X, p.Y) || !dest.IsWalkable(p.X, p.Y) {
				return fmt.Errorf("%w: floor %d portal at %v (%s<->%s) is blocked", ErrValidationFailed, wf.ID, p, w, marker.Dest)
			}
		}
	}
	return nil
}

// reachableFrom flood-fills the layer from the given seeds over
// 8-directional adjacency. A diagonal step is only taken when at least
// one of its two orthogonal neighbors is open, so connectivity never
// depends on squeezing between two blocked corners.
func reachableFrom(l *MapLayer, seeds []Point) map[Point]struct{} {
	reached := make(map[Point]struct{})
	var queue []Point
	for _, s := range seeds {
		if l.IsWalkable(s.X, s.Y) {
			if _, ok := reached[s]; !ok {
				reached[s] = struct{}{}
				queue = append(queue, s)
			}
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n := Point{X: p.X + dx, Y: p.Y + dy}
				if !l.IsWalkable(n.X, n.Y) {
					continue
				}
				if dx != 0 && dy != 0 &&
					!l.IsWalkable(p.X+dx, p.Y) && !l.IsWalkable(p.X, p.Y+dy) {
					continue // corner cut through two blocked tiles
				}
				if _, ok := reached[n]; !ok {
					reached[n] = struct{}{}
					queue = append(queue, n)
				}
			}
		}
	}
	return reached
}
