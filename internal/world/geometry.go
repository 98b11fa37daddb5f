package world

// Point is a tile coordinate on a floor.
type Point struct {
	X, Y int
}

// Room is a rectangular room in the substrate skeleton.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int
}

// Center returns the center coordinates of the room.
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
