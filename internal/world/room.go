package world

// Room is a carved rectangle, tracked by its inclusive corners.
type Room struct {
	Begin Position // Top-left corner
	End   Position // Bottom-right corner, inclusive
}

// Width returns the number of columns in the room.
func (r Room) Width() int {
	return r.End.X - r.Begin.X + 1
}

// Height returns the number of rows in the room.
func (r Room) Height() int {
	return r.End.Y - r.Begin.Y + 1
}

// Area returns the number of tiles in the room.
func (r Room) Area() int {
	return r.Width() * r.Height()
}

// Center returns the center coordinates of the room.
func (r Room) Center() Position {
	return Position{X: (r.Begin.X + r.End.X) / 2, Y: (r.Begin.Y + r.End.Y) / 2}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(p Position) bool {
	return p.X >= r.Begin.X && p.X <= r.End.X && p.Y >= r.Begin.Y && p.Y <= r.End.Y
}

// Each calls fn for every position in the room, row by row.
func (r Room) Each(fn func(Position)) {
	for y := r.Begin.Y; y <= r.End.Y; y++ {
		for x := r.Begin.X; x <= r.End.X; x++ {
			fn(Position{X: x, Y: y})
		}
	}
}

// Corridor records which consecutive rooms a corridor joins and where it put
// doors. The path may also cross doors an earlier corridor placed; those are
// not listed in Doors.
type Corridor struct {
	From, To int        // Indexes into the room list
	Path     []Position // Tiles walked from one center to the other
	Doors    []Position // Tiles this corridor converted to doors, in path order
}

// DoorCount returns how many door tiles lie on the corridor's path.
func (c Corridor) DoorCount(g *Grid) int {
	n := 0
	for _, p := range c.Path {
		if g.TypeAt(p) == TileDoor {
			n++
		}
	}
	return n
}
