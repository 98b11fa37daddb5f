package world

import (
	"fmt"
	"math/rand"
)

const (
	// Default floor dimensions
	DefaultWidth  = 80
	DefaultHeight = 40

	// BSP parameters
	minRoomSize = 5  // Minimum room dimension
	maxRoomSize = 12 // Maximum room dimension
	minLeafSize = 7  // Minimum BSP leaf size before stopping split

	// A substrate needs at least two rooms so the down-stair never
	// shares a room with the spawn point.
	minRooms = 2

	// Bounded retry budget before ErrGenerationExhausted.
	substrateAttempts = 8
)

// Substrate is the shared room/corridor skeleton for one floor, common
// to all seven worlds. Immutable once generated.
type Substrate struct {
	Width, Height int
	Rooms         []Room
	Corridors     [][]Point // carved point sequences connecting rooms
	StairUp       []Point   // candidate up-stair positions (floors > 0)
	StairDown     []Point   // candidate down-stair positions
	Spawn         Point

	carved map[Point]struct{}
}

// Carved reports whether the point is part of the walkable skeleton
// (inside a room or on a corridor).
func (s *Substrate) Carved(p Point) bool {
	_, ok := s.carved[p]
	return ok
}

// InBounds reports whether the point lies within the substrate.
func (s *Substrate) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// NearestCarved returns the carved point closest to p by Chebyshev
// distance, scanning outward in rings. Used as the documented fallback
// when a stair cannot land on its aligned coordinate.
func (s *Substrate) NearestCarved(p Point) (Point, bool) {
	if s.Carved(p) {
		return p, true
	}
	maxRadius := s.Width
	if s.Height > maxRadius {
		maxRadius = s.Height
	}
	for radius := 1; radius <= maxRadius; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if max(abs(dx), abs(dy)) != radius {
					continue
				}
				q := Point{X: p.X + dx, Y: p.Y + dy}
				if s.InBounds(q) && s.Carved(q) {
					return q, true
				}
			}
		}
	}
	return Point{}, false
}

// GenerateSubstrate produces the shared skeleton for one floor. The same
// seed and dimensions always produce an identical substrate. alignUp, if
// non-nil, is the prior floor's down-stair coordinate; the up-stair is
// placed there when carved, else at the nearest carved tile.
func GenerateSubstrate(width, height int, seed int64, alignUp *Point) (*Substrate, error) {
	for attempt := 0; attempt < substrateAttempts; attempt++ {
		rng := rand.New(rand.NewSource(mixSeed(seed, int64(attempt))))
		sub := buildSkeleton(width, height, rng)
		if len(sub.Rooms) < minRooms {
			continue
		}
		sub.placeStairs(alignUp)
		return sub, nil
	}
	return nil, fmt.Errorf("%w: no layout with %d+ rooms in %d attempts (%dx%d)",
		ErrGenerationExhausted, minRooms, substrateAttempts, width, height)
}

// buildSkeleton runs one BSP pass: split, place rooms in leaves, connect
// sibling subtrees with L-shaped corridor paths.
func buildSkeleton(width, height int, rng *rand.Rand) *Substrate {
	sub := &Substrate{
		Width:  width,
		Height: height,
		carved: make(map[Point]struct{}),
	}

	root := &bspNode{x: 1, y: 1, width: width - 2, height: height - 2}
	splitNode(root, rng)
	sub.createRooms(root, rng)
	sub.connectRooms(root, rng)

	for _, room := range sub.Rooms {
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				sub.carved[Point{X: x, Y: y}] = struct{}{}
			}
		}
	}
	for _, corridor := range sub.Corridors {
		for _, p := range corridor {
			sub.carved[p] = struct{}{}
		}
	}
	return sub
}

// placeStairs picks the spawn, up-stair, and down-stair candidates. Down
// goes in the room farthest from the spawn room so floors read as a
// descent rather than a dead end next to the entrance.
func (s *Substrate) placeStairs(alignUp *Point) {
	s.Spawn = s.Rooms[0].Center()

	if alignUp != nil {
		up := *alignUp
		if carved, ok := s.NearestCarved(up); ok {
			up = carved
		}
		s.StairUp = []Point{up}
		s.Spawn = up
	}

	down := s.Rooms[len(s.Rooms)-1].Center()
	best := -1
	for _, room := range s.Rooms {
		c := room.Center()
		dist := abs(c.X-s.Spawn.X) + abs(c.Y-s.Spawn.Y)
		if dist > best && c != s.Spawn {
			best = dist
			down = c
		}
	}
	s.StairDown = []Point{down}
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func splitNode(node *bspNode, rng *rand.Rand) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false // split vertically (left/right)
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true // split horizontally (top/bottom)
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return
	}

	var splitPos int
	if splitHorizontally {
		lo, hi := minLeafSize, node.height-minLeafSize
		if hi <= lo {
			return
		}
		splitPos = lo + rng.Intn(hi-lo+1)
	} else {
		lo, hi := minLeafSize, node.width-minLeafSize
		if hi <= lo {
			return
		}
		splitPos = lo + rng.Intn(hi-lo+1)
	}

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	splitNode(node.left, rng)
	splitNode(node.right, rng)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (s *Substrate) createRooms(node *bspNode, rng *rand.Rand) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		s.createRooms(node.left, rng)
		s.createRooms(node.right, rng)
		return
	}

	roomWidth := minRoomSize + rng.Intn(min(maxRoomSize-minRoomSize+1, max(1, node.width-minRoomSize+1)))
	roomHeight := minRoomSize + rng.Intn(min(maxRoomSize-minRoomSize+1, max(1, node.height-minRoomSize+1)))

	if roomWidth > node.width-2 {
		roomWidth = node.width - 2
	}
	if roomHeight > node.height-2 {
		roomHeight = node.height - 2
	}
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return // leaf too cramped
	}

	roomX := node.x + 1 + rng.Intn(node.width-roomWidth-1)
	roomY := node.y + 1 + rng.Intn(node.height-roomHeight-1)

	room := Room{X: roomX, Y: roomY, Width: roomWidth, Height: roomHeight}
	node.room = &room
	s.Rooms = append(s.Rooms, room)
}

// connectRooms records corridor paths between sibling subtrees. Paths
// are kept as point sequences so each world layer can paint them with
// its own tiles.
func (s *Substrate) connectRooms(node *bspNode, rng *rand.Rand) {
	if node == nil || node.isLeaf() {
		return
	}

	s.connectRooms(node.left, rng)
	s.connectRooms(node.right, rng)

	leftRoom := subtreeRoom(node.left)
	rightRoom := subtreeRoom(node.right)
	if leftRoom != nil && rightRoom != nil {
		s.Corridors = append(s.Corridors,
			corridorPath(leftRoom.Center(), rightRoom.Center(), rng.Intn(2) == 0))
	}
}

// subtreeRoom returns a room from a subtree (any room will do).
func subtreeRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := subtreeRoom(node.left); room != nil {
		return room
	}
	return subtreeRoom(node.right)
}

// corridorPath walks an L-shaped path between two points, horizontal leg
// first when horizontalFirst is set.
func corridorPath(start, end Point, horizontalFirst bool) []Point {
	path := []Point{start}
	cursor := start

	stepX := func() {
		for cursor.X != end.X {
			if end.X > cursor.X {
				cursor.X++
			} else {
				cursor.X--
			}
			path = append(path, cursor)
		}
	}
	stepY := func() {
		for cursor.Y != end.Y {
			if end.Y > cursor.Y {
				cursor.Y++
			} else {
				cursor.Y--
			}
			path = append(path, cursor)
		}
	}

	if horizontalFirst {
		stepX()
		stepY()
	} else {
		stepY()
		stepX()
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
