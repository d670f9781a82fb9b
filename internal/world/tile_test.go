package world

import (
	"math"
	"testing"
)

// carvedGrid returns a grid with one floor room covering everything inside a
// one-tile wall border.
func carvedGrid(width, height int) *Grid {
	g := NewGrid(width, height, 1)
	room := Room{Begin: Position{X: 1, Y: 1}, End: Position{X: width - 2, Y: height - 2}}
	room.Each(func(p Position) {
		g.SetTile(p, TileFloor)
	})
	g.rooms = append(g.rooms, room)
	return g
}

func TestTileOracle(t *testing.T) {
	tests := []struct {
		typ         TileType
		walkable    bool
		swimmable   bool
		transparent bool
		cost        float64
	}{
		{TileFloor, true, true, true, CostFloor},
		{TileCorridor, true, true, true, CostFloor},
		{TileDoor, true, true, false, CostDoor},
		{TileWater, false, true, false, CostWater},
		{TileWall, false, false, false, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			tile := newTile(tt.typ)
			if tile.IsWalkable() != tt.walkable {
				t.Errorf("IsWalkable() = %v, want %v", tile.IsWalkable(), tt.walkable)
			}
			if tile.IsWalkableFor(CapSwim) != tt.swimmable {
				t.Errorf("IsWalkableFor(CapSwim) = %v, want %v", tile.IsWalkableFor(CapSwim), tt.swimmable)
			}
			if tile.IsTransparent() != tt.transparent {
				t.Errorf("IsTransparent() = %v, want %v", tile.IsTransparent(), tt.transparent)
			}
			if tile.Cost != tt.cost {
				t.Errorf("Cost = %v, want %v", tile.Cost, tt.cost)
			}
		})
	}
}

func TestSetTileKeepsExplored(t *testing.T) {
	g := NewGrid(5, 5, 1)
	p := Position{X: 2, Y: 2}
	g.markExplored(p)

	g.SetTile(p, TileDoor)

	if !g.IsExplored(p) {
		t.Error("Retyping a tile must not clear its explored flag")
	}
	if !g.IsWalkable(p) || g.IsTransparent(p) {
		t.Error("Door should be walkable and opaque right after SetTile")
	}

	g.SetTile(p, TileWall)
	if g.IsWalkable(p) {
		t.Error("Wall should not be walkable after retyping a door")
	}
}

func TestOutOfBoundsQueries(t *testing.T) {
	g := carvedGrid(6, 6)
	outside := []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 6, Y: 2}, {X: 2, Y: 6}}

	for _, p := range outside {
		if g.TypeAt(p) != TileWall {
			t.Errorf("TypeAt(%v) = %v, want wall", p, g.TypeAt(p))
		}
		if g.IsWalkable(p) || g.IsTransparent(p) || g.IsExplored(p) {
			t.Errorf("Out-of-bounds %v should report false for every query", p)
		}
		if g.SetTile(p, TileFloor) {
			t.Errorf("SetTile(%v) should fail out of bounds", p)
		}
	}
}

func TestDiceReproducibility(t *testing.T) {
	d1 := NewDice(12345)
	d2 := NewDice(12345)

	for i := 0; i < 50; i++ {
		a, b := d1.Roll(1, 6), d2.Roll(1, 6)
		if a != b {
			t.Fatalf("Roll %d differs: %d != %d", i, a, b)
		}
		if a < 1 || a > 6 {
			t.Fatalf("Roll %d out of range: %d", i, a)
		}
	}
	if d1.Draws() != 50 {
		t.Errorf("Expected 50 draws, got %d", d1.Draws())
	}

	// Reversed bounds are swapped.
	for i := 0; i < 20; i++ {
		if v := d1.Roll(9, 3); v < 3 || v > 9 {
			t.Fatalf("Roll(9, 3) = %d, want value in [3, 9]", v)
		}
	}
}

func TestRoomIndexAt(t *testing.T) {
	g := carvedGrid(8, 6)

	if got := g.RoomIndexAt(Position{X: 3, Y: 3}); got != 0 {
		t.Errorf("RoomIndexAt inside the room = %d, want 0", got)
	}
	for _, p := range []Position{{X: 0, Y: 0}, {X: 7, Y: 3}, {X: -1, Y: 2}} {
		if got := g.RoomIndexAt(p); got != -1 {
			t.Errorf("RoomIndexAt(%v) = %d, want -1", p, got)
		}
	}
}
