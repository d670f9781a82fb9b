package world

// Occupancy reports whether an actor currently stands on a tile.
type Occupancy interface {
	Occupied(p Position) bool
}

// OccupancyFunc adapts a plain function to Occupancy.
type OccupancyFunc func(p Position) bool

// Occupied calls f(p).
func (f OccupancyFunc) Occupied(p Position) bool {
	return f(p)
}

// Grid is the tile state of one floor. It is the single source of truth for
// terrain; every retype goes through SetTile so the oracle flags never drift.
type Grid struct {
	Width  int
	Height int

	tiles     []Tile
	rooms     []Room
	corridors []Corridor

	dice      *Dice // layout stream: partition and carving
	spawnDice *Dice // placement stream: player, exit, population

	playerStart Position
	exit        Position
	hasStart    bool
	hasExit     bool

	occupancy Occupancy
	layout    string // Config.Layout of the generator that carved it
}

// NewGrid creates a floor filled with unexplored walls.
func NewGrid(width, height int, seed int64) *Grid {
	tiles := make([]Tile, width*height)
	wall := newTile(TileWall)
	for i := range tiles {
		tiles[i] = wall
	}

	return &Grid{
		Width:     width,
		Height:    height,
		tiles:     tiles,
		rooms:     make([]Room, 0),
		dice:      NewDice(seed),
		spawnDice: NewDice(seed ^ spawnSalt),
	}
}

// Seed returns the seed the floor was generated from.
func (g *Grid) Seed() int64 {
	return g.dice.Seed()
}

// Dice returns the layout random stream.
func (g *Grid) Dice() *Dice {
	return g.dice
}

// SpawnDice returns the placement random stream. It is independent of the layout
// stream, so populating a floor never changes its tiles.
func (g *Grid) SpawnDice() *Dice {
	return g.spawnDice
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Grid) index(p Position) int {
	return p.Y*g.Width + p.X
}

func (g *Grid) position(i int) Position {
	return Position{X: i % g.Width, Y: i / g.Width}
}

// Tile returns the tile at p. Out-of-bounds positions return a wall and false.
func (g *Grid) Tile(p Position) (Tile, bool) {
	if !g.InBounds(p) {
		return newTile(TileWall), false
	}
	return g.tiles[g.index(p)], true
}

// SetTile retypes the tile at p, updating cost, walkability and transparency in
// the same write. The explored flag is preserved. Returns false when p is out of
// bounds.
func (g *Grid) SetTile(p Position, t TileType) bool {
	if !g.InBounds(p) {
		return false
	}
	i := g.index(p)
	explored := g.tiles[i].Explored
	g.tiles[i] = newTile(t)
	g.tiles[i].Explored = explored
	return true
}

// TypeAt returns the tile type at p. Out-of-bounds positions are walls.
func (g *Grid) TypeAt(p Position) TileType {
	t, _ := g.Tile(p)
	return t.Type
}

// IsWalkable reports whether a creature with default capabilities may stand at p.
func (g *Grid) IsWalkable(p Position) bool {
	t, ok := g.Tile(p)
	return ok && t.IsWalkable()
}

// IsWalkableFor reports whether a creature with caps may stand at p.
func (g *Grid) IsWalkableFor(p Position, caps Capability) bool {
	t, ok := g.Tile(p)
	return ok && t.IsWalkableFor(caps)
}

// IsTransparent reports whether p lets light through.
func (g *Grid) IsTransparent(p Position) bool {
	t, ok := g.Tile(p)
	return ok && t.IsTransparent()
}

// IsExplored reports whether the player has ever seen p.
func (g *Grid) IsExplored(p Position) bool {
	t, ok := g.Tile(p)
	return ok && t.Explored
}

// Cost returns the traversal cost of p. Walls and out-of-bounds are +Inf.
func (g *Grid) Cost(p Position) float64 {
	t, _ := g.Tile(p)
	return t.Cost
}

func (g *Grid) markExplored(p Position) {
	if g.InBounds(p) {
		g.tiles[g.index(p)].Explored = true
	}
}

// Reveal marks every tile explored.
func (g *Grid) Reveal() {
	for i := range g.tiles {
		g.tiles[i].Explored = true
	}
}

// ExploredCount returns the number of explored tiles.
func (g *Grid) ExploredCount() int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].Explored {
			n++
		}
	}
	return n
}

// Each calls fn for every tile in row-major order.
func (g *Grid) Each(fn func(p Position, t Tile)) {
	for i, t := range g.tiles {
		fn(g.position(i), t)
	}
}

// Rooms returns the carved rooms in generation order.
func (g *Grid) Rooms() []Room {
	return append([]Room(nil), g.rooms...)
}

// Corridors returns the carved corridors in generation order.
func (g *Grid) Corridors() []Corridor {
	return append([]Corridor(nil), g.corridors...)
}

// RoomIndexAt returns the index of the room containing p, or -1 if not in a room.
func (g *Grid) RoomIndexAt(p Position) int {
	for i, room := range g.rooms {
		if room.Contains(p) {
			return i
		}
	}
	return -1
}

// PlayerStart returns where the player enters the floor.
func (g *Grid) PlayerStart() (Position, bool) {
	return g.playerStart, g.hasStart
}

// SetPlayerStart records the player start position.
func (g *Grid) SetPlayerStart(p Position) {
	g.playerStart = p
	g.hasStart = true
}

// ExitPosition returns the position of the stairs down.
func (g *Grid) ExitPosition() (Position, bool) {
	return g.exit, g.hasExit
}

// SetExit records the exit position.
func (g *Grid) SetExit(p Position) {
	g.exit = p
	g.hasExit = true
}

// SetOccupancy installs the predicate FindPath uses to detect blocking actors.
func (g *Grid) SetOccupancy(o Occupancy) {
	g.occupancy = o
}

// Occupied reports whether an actor stands at p according to the installed predicate.
func (g *Grid) Occupied(p Position) bool {
	return g.occupancy != nil && g.occupancy.Occupied(p)
}
