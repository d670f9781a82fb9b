package world

import "github.com/zyedidia/generic/mapset"

// CorridorStyle selects the shape of the path between two room centers.
type CorridorStyle uint8

const (
	// CorridorL runs along one axis then the other; a coin flip picks which first.
	CorridorL CorridorStyle = iota
	// CorridorZ runs vertically to the middle row, across, then vertically again.
	CorridorZ
)

// String returns the style name used in configuration.
func (s CorridorStyle) String() string {
	switch s {
	case CorridorZ:
		return "z"
	default:
		return "l"
	}
}

// ParseCorridorStyle maps a configuration value to a style. Unknown values are L.
func ParseCorridorStyle(v string) CorridorStyle {
	if v == "z" || v == "Z" {
		return CorridorZ
	}
	return CorridorL
}

// doorState is the position of the door tracker along a corridor.
type doorState uint8

const (
	beforeFirstDoor doorState = iota
	betweenDoors
	afterSecondDoor
	terminal
)

func (s doorState) String() string {
	switch s {
	case beforeFirstDoor:
		return "before-first-door"
	case betweenDoors:
		return "between-doors"
	case afterSecondDoor:
		return "after-second-door"
	case terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// doorTracker carves one corridor tile at a time and decides where doors go.
// Room tiles are never overwritten.
type doorTracker struct {
	state      doorState
	prev       Position
	hasPrev    bool
	prevCarved bool                 // prev was wall until this corridor reached it
	carved     mapset.Set[Position] // tiles this corridor turned from wall into corridor
	doors      []Position
}

func newDoorTracker() *doorTracker {
	return &doorTracker{carved: mapset.New[Position]()}
}

// visit carves p and advances the tracker.
func (t *doorTracker) visit(g *Grid, p Position) {
	if !g.InBounds(p) {
		return
	}
	current := g.TypeAt(p)
	carved := false

	switch t.state {
	case beforeFirstDoor:
		switch {
		case current == TileWall:
			t.door(g, p)
			t.state = betweenDoors
		case current == TileCorridor || current == TileDoor:
			// Another corridor already breached this wall.
			t.state = betweenDoors
		}

	case betweenDoors:
		switch {
		case current == TileWall:
			g.SetTile(p, TileCorridor)
			carved = true
		case current.IsRoom():
			// The last tile before a room becomes its door. Tiles another
			// corridor carved are left alone.
			if t.hasPrev && t.prevCarved && g.canHoldDoor(t.prev) {
				t.door(g, t.prev)
			}
			t.state = afterSecondDoor
		}

	case afterSecondDoor:
		switch {
		case current == TileWall:
			t.door(g, p)
			t.state = terminal
		case current == TileCorridor || current == TileDoor:
			t.state = terminal
		}

	case terminal:
		if current == TileWall {
			g.SetTile(p, TileCorridor)
			carved = true
		}
	}

	if carved {
		t.carved.Put(p)
	}
	t.prev = p
	t.hasPrev = true
	t.prevCarved = carved
}

func (t *doorTracker) door(g *Grid, p Position) {
	g.SetTile(p, TileDoor)
	t.doors = append(t.doors, p)
}

// settle runs once the whole path is carved. Doors left without a room or a
// corridor beside them go back to corridor, and a path that crosses no door at
// all gets one where it meets a room.
func (t *doorTracker) settle(g *Grid, path []Position) {
	kept := t.doors[:0]
	for _, d := range t.doors {
		if g.nextTo(d, TileType.IsRoom) && g.nextTo(d, isCorridor) {
			kept = append(kept, d)
			continue
		}
		g.SetTile(d, TileCorridor)
		t.carved.Put(d)
	}
	t.doors = kept

	for _, p := range path {
		if g.TypeAt(p) == TileDoor {
			return
		}
	}

	// Prefer tiles this corridor carved over ones it shares with another.
	for _, own := range []bool{true, false} {
		for _, p := range path {
			if t.carved.Has(p) == own && g.canHoldDoor(p) {
				t.door(g, p)
				return
			}
		}
	}
}

func isCorridor(t TileType) bool {
	return t == TileCorridor
}

// nextTo reports whether any of the eight tiles around p matches.
func (g *Grid) nextTo(p Position, match func(TileType) bool) bool {
	for _, d := range neighbours8 {
		if match(g.TypeAt(p.Add(d))) {
			return true
		}
	}
	return false
}

// canHoldDoor reports whether the corridor tile p can become a door: it must
// touch a room and another corridor tile, and every door beside it must keep
// a corridor neighbour of its own.
func (g *Grid) canHoldDoor(p Position) bool {
	if g.TypeAt(p) != TileCorridor {
		return false
	}
	if !g.nextTo(p, TileType.IsRoom) || !g.nextTo(p, isCorridor) {
		return false
	}
	for _, d := range neighbours8 {
		q := p.Add(d)
		if g.TypeAt(q) == TileDoor && g.soleCorridorOf(q, p) {
			return false
		}
	}
	return true
}

// soleCorridorOf reports whether p is the only corridor tile around q.
func (g *Grid) soleCorridorOf(q, p Position) bool {
	for _, d := range neighbours8 {
		n := q.Add(d)
		if n != p && g.TypeAt(n) == TileCorridor {
			return false
		}
	}
	return true
}

// corridorPath lists the tiles from one center to the other in walking order.
// Corners are visited once.
func corridorPath(from, to Position, style CorridorStyle, dice *Dice) []Position {
	var waypoints []Position
	switch style {
	case CorridorZ:
		mid := (from.Y + to.Y) / 2
		waypoints = []Position{from, {X: from.X, Y: mid}, {X: to.X, Y: mid}, to}
	default:
		if dice.Coin() {
			// Vertical first, meeting on the destination's row.
			waypoints = []Position{from, {X: from.X, Y: to.Y}, to}
		} else {
			waypoints = []Position{from, {X: to.X, Y: from.Y}, to}
		}
	}

	path := []Position{from}
	for i := 1; i < len(waypoints); i++ {
		path = appendLeg(path, waypoints[i-1], waypoints[i])
	}
	return path
}

// appendLeg walks a straight leg, excluding its first tile.
func appendLeg(path []Position, a, b Position) []Position {
	step := Position{X: sign(b.X - a.X), Y: sign(b.Y - a.Y)}
	for p := a; p != b; {
		p = p.Add(step)
		path = append(path, p)
	}
	return path
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// CarveCorridor connects two room centers and returns the tiles it turned into
// doors, in path order. Equal endpoints carve nothing.
func (g *Grid) CarveCorridor(from, to Position, style CorridorStyle) []Position {
	_, doors := g.carveCorridor(from, to, style)
	return doors
}

// carveCorridor carves and returns the walked path along with the doors.
func (g *Grid) carveCorridor(from, to Position, style CorridorStyle) (path, doors []Position) {
	if from == to {
		return nil, nil
	}
	if !g.InBounds(from) || !g.InBounds(to) {
		return nil, nil
	}

	path = corridorPath(from, to, style, g.dice)
	tracker := newDoorTracker()
	for _, p := range path {
		tracker.visit(g, p)
	}
	tracker.settle(g, path)
	return path, tracker.doors
}
