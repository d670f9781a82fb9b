package world

import "math"

// Position is a grid coordinate. X is the column, Y is the row.
type Position struct {
	X, Y int
}

// Add returns the position offset by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Chebyshev returns the chessboard distance between two positions.
func (p Position) Chebyshev(o Position) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Euclidean returns the straight-line distance between two positions.
func (p Position) Euclidean(o Position) float64 {
	dx, dy := float64(p.X-o.X), float64(p.Y-o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// neighbours8 lists the eight compass offsets, north first, clockwise.
var neighbours8 = [8]Position{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
}

// neighbours4 lists the orthogonal offsets: north, east, south, west.
var neighbours4 = [4]Position{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
