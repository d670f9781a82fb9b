package world

import "testing"

func TestCarveRoomSixBySixLeaf(t *testing.T) {
	want := Room{Begin: Position{X: 1, Y: 1}, End: Position{X: 4, Y: 4}}

	for seed := int64(0); seed < 25; seed++ {
		g := NewGrid(6, 6, seed)
		room, ok := g.CarveRoom(Rect{W: 6, H: 6}, Config{MinRoomSize: 6})
		if !ok {
			t.Fatalf("seed %d: 6x6 leaf was skipped", seed)
		}
		if room != want {
			t.Fatalf("seed %d: got room %+v, want %+v", seed, room, want)
		}
	}
}

func TestCarveRoomTiles(t *testing.T) {
	g := NewGrid(6, 6, 7)
	room, _ := g.CarveRoom(Rect{W: 6, H: 6}, Config{MinRoomSize: 6})

	g.Each(func(p Position, tile Tile) {
		inside := room.Contains(p)
		switch {
		case inside && tile.Type != TileFloor:
			t.Errorf("Expected floor inside the room at %v, got %v", p, tile.Type)
		case !inside && tile.Type != TileWall:
			t.Errorf("Expected wall outside the room at %v, got %v", p, tile.Type)
		}
		if inside && !g.IsWalkable(p) {
			t.Errorf("Room tile %v should be walkable", p)
		}
	})

	if got := g.Rooms(); len(got) != 1 || got[0] != room {
		t.Errorf("Expected the room to be recorded, got %+v", got)
	}
}

func TestCarveRoomWater(t *testing.T) {
	g := NewGrid(6, 6, 3)
	room, _ := g.CarveRoom(Rect{W: 6, H: 6}, Config{MinRoomSize: 6, WaterChance: 100})

	room.Each(func(p Position) {
		if g.TypeAt(p) != TileWater {
			t.Errorf("Expected water at %v, got %v", p, g.TypeAt(p))
		}
		if g.IsWalkable(p) || !g.IsWalkableFor(p, CapSwim) {
			t.Errorf("Water at %v should only be walkable for swimmers", p)
		}
	})
}

func TestCarveRoomNarrowRoomStaysDry(t *testing.T) {
	g := NewGrid(3, 8, 3)
	room, ok := g.CarveRoom(Rect{W: 3, H: 8}, Config{MinRoomSize: 6, WaterChance: 100})
	if !ok {
		t.Fatal("3-wide leaf should host a 1-wide room")
	}
	if room.Width() != 1 {
		t.Fatalf("Expected a 1-wide room, got %+v", room)
	}

	room.Each(func(p Position) {
		if g.TypeAt(p) != TileFloor {
			t.Errorf("One-wide passage at %v must not be plugged with water", p)
		}
	})
}

func TestCarveRoomSkipsTinyLeaf(t *testing.T) {
	g := NewGrid(10, 10, 1)

	if _, ok := g.CarveRoom(Rect{W: 2, H: 6}, DefaultConfig()); ok {
		t.Error("A leaf without interior should be skipped")
	}
	if len(g.Rooms()) != 0 {
		t.Error("Skipped leaf should not record a room")
	}
}
