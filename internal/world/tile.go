// Package world owns the tile grid of a dungeon floor: generation (space
// partitioning, room and corridor carving), and the walkability, visibility and
// path queries the rest of the game runs against it.
package world

import "math"

// TileType is the terrain of a single cell.
type TileType uint8

const (
	// TileWall is solid rock. It is the zero value, so an uncarved grid is all wall.
	TileWall TileType = iota
	// TileFloor is the open floor of a room.
	TileFloor
	// TileWater is a pool inside a room. Only swimmers may enter it.
	TileWater
	// TileDoor marks a corridor breaching a room wall. Walkable, blocks sight.
	TileDoor
	// TileCorridor is a carved passage between rooms.
	TileCorridor
)

// String returns a human-readable tile type name.
func (t TileType) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileWater:
		return "water"
	case TileDoor:
		return "door"
	case TileCorridor:
		return "corridor"
	default:
		return "unknown"
	}
}

// Rune returns the tile's display character.
func (t TileType) Rune() rune {
	switch t {
	case TileFloor:
		return '.'
	case TileWater:
		return '~'
	case TileDoor:
		return '+'
	case TileCorridor:
		return ','
	default:
		return '#'
	}
}

// IsRoom reports whether the type is part of a carved room interior.
func (t TileType) IsRoom() bool {
	return t == TileFloor || t == TileWater
}

// Capability is a set of movement abilities a creature carries.
type Capability uint8

const (
	// CapSwim lets a creature enter water.
	CapSwim Capability = 1 << iota
)

// Traversal costs used by path search.
const (
	CostFloor = 1.0
	CostDoor  = 2.0
	CostWater = 10.0
)

type tileFlags uint8

const (
	flagWalkable tileFlags = 1 << iota
	flagSwimmable
	flagTransparent
)

// Tile is one cell of the grid. The walkability and transparency flags are
// derived from Type and only ever change together with it, through newTile.
type Tile struct {
	Type     TileType
	Explored bool
	Cost     float64
	flags    tileFlags
}

// newTile builds the tile for a type with its cost and oracle flags.
// Explored is left false; callers that retype a cell carry it over.
func newTile(t TileType) Tile {
	switch t {
	case TileFloor, TileCorridor:
		return Tile{Type: t, Cost: CostFloor, flags: flagWalkable | flagSwimmable | flagTransparent}
	case TileDoor:
		return Tile{Type: t, Cost: CostDoor, flags: flagWalkable | flagSwimmable}
	case TileWater:
		return Tile{Type: t, Cost: CostWater, flags: flagSwimmable}
	default:
		return Tile{Type: TileWall, Cost: math.Inf(1)}
	}
}

// IsWalkable reports whether a creature without special capabilities may stand here.
func (t Tile) IsWalkable() bool {
	return t.flags&flagWalkable != 0
}

// IsWalkableFor reports whether a creature with the given capabilities may stand here.
func (t Tile) IsWalkableFor(caps Capability) bool {
	if caps&CapSwim != 0 {
		return t.flags&flagSwimmable != 0
	}
	return t.IsWalkable()
}

// IsTransparent reports whether light passes through the tile.
func (t Tile) IsTransparent() bool {
	return t.flags&flagTransparent != 0
}

// IsPassable reports whether path search may route through the tile at all.
func (t Tile) IsPassable() bool {
	return !math.IsInf(t.Cost, 1)
}
