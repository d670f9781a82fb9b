package world

import "github.com/zyedidia/generic/mapset"

// multipliers transform octant-local coordinates into grid offsets.
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeVisibility returns every position visible from origin within radius,
// using recursive shadowcasting over tile transparency. Opaque tiles are seen
// but hide what lies behind them. Every visible tile is marked explored.
//
// An out-of-bounds origin or a non-positive radius yields an empty set and
// leaves the grid untouched.
func (g *Grid) ComputeVisibility(origin Position, radius int) mapset.Set[Position] {
	visible := mapset.New[Position]()
	if !g.InBounds(origin) || radius <= 0 {
		return visible
	}

	visible.Put(origin)
	for oct := 0; oct < 8; oct++ {
		g.castLight(origin, 1, 1.0, 0.0, radius,
			multipliers[0][oct], multipliers[1][oct],
			multipliers[2][oct], multipliers[3][oct], visible)
	}

	visible.Each(g.markExplored)
	return visible
}

func (g *Grid) castLight(origin Position, row int, start, end float64, radius, xx, xy, yx, yy int, visible mapset.Set[Position]) {
	if start < end {
		return
	}

	radiusSq := radius * radius

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			p := Position{
				X: origin.X + dx*xx + dy*xy,
				Y: origin.Y + dx*yx + dy*yy,
			}

			if g.InBounds(p) && dx*dx+dy*dy <= radiusSq {
				visible.Put(p)
			}

			opaque := !g.IsTransparent(p)
			if blocked {
				if opaque {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				blocked = true
				g.castLight(origin, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// HasLineOfSight reports whether a straight line from one position to another
// crosses only transparent tiles. The endpoints themselves are not tested.
func (g *Grid) HasLineOfSight(from, to Position) bool {
	if !g.InBounds(from) || !g.InBounds(to) {
		return false
	}

	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)
	e := dx + dy

	p := from
	for {
		if p == to {
			return true
		}
		if p != from && !g.IsTransparent(p) {
			return false
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}
