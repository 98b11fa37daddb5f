package world

// FloorID identifies depth. Floor 0 is the entry floor; ids increase
// strictly with descent.
type FloorID int

// WorldFloor is one floor of the dungeon: the shared substrate plus its
// seven materialized layers, indexed by World. Created atomically by the
// generation pipeline and never regenerated in place.
type WorldFloor struct {
	ID        FloorID
	Substrate *Substrate
	Layers    [WorldCount]MapLayer
}

// Layer returns the materialized layer for the given world.
func (wf *WorldFloor) Layer(w World) *MapLayer {
	return &wf.Layers[w.Index()]
}

// TileAt returns the tile at (x, y) on the given world's layer.
func (wf *WorldFloor) TileAt(w World, x, y int) Tile {
	return wf.Layer(w).TileAt(x, y)
}

// UpStair returns the floor's up-stair position. ok is false on the
// entry floor, which has none.
func (wf *WorldFloor) UpStair() (Point, bool) {
	if len(wf.Substrate.StairUp) == 0 {
		return Point{}, false
	}
	return wf.Substrate.StairUp[0], true
}

// DownStair returns the floor's down-stair position.
func (wf *WorldFloor) DownStair() Point {
	return wf.Substrate.StairDown[0]
}

// buildWorldFloor runs one full pipeline attempt: substrate, seven
// layers, portals, validation. Any stage failure discards the attempt.
func buildWorldFloor(id FloorID, width, height int, seed int64, alignUp *Point, styles *[WorldCount]LayerStyle) (*WorldFloor, error) {
	sub, err := GenerateSubstrate(width, height, seed, alignUp)
	if err != nil {
		return nil, err
	}

	wf := &WorldFloor{ID: id, Substrate: sub}
	for _, w := range Spectrum {
		wf.Layers[w.Index()] = MaterializeLayer(sub, w, seed, styles[w.Index()])
	}

	if err := PlacePortals(&wf.Layers, sub, seed, styles); err != nil {
		return nil, err
	}
	if err := ValidateWorldFloor(wf); err != nil {
		return nil, err
	}
	return wf, nil
}
