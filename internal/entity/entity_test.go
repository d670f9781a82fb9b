package entity

import (
	"testing"

	"github.com/google/uuid"

	"github.com/samdwyer/deepfloor/internal/gamedata"
	"github.com/samdwyer/deepfloor/internal/world"
)

func TestRosterOccupancy(t *testing.T) {
	r := NewRoster()
	goblin := NewMonster(uuid.New(), gamedata.MonsterDef{ID: "goblin", Name: "Goblin", Glyph: "g", HP: 5}, world.Position{X: 2, Y: 3}, 1)
	potion := NewItem(uuid.New(), gamedata.ItemDef{ID: "health_potion", Glyph: "!"}, world.Position{X: 4, Y: 3}, 1)
	r.Add(goblin)
	r.Add(potion)

	if !r.Occupied(goblin.Pos) {
		t.Error("Monster tile should be occupied")
	}
	if r.Occupied(potion.Pos) {
		t.Error("Items should not block movement")
	}
	if !r.Taken(potion.Pos) {
		t.Error("Item tile should be taken for placement")
	}
	if len(r.Monsters()) != 1 || len(r.Items()) != 1 || r.Len() != 2 {
		t.Errorf("Unexpected roster contents: %d monsters, %d items", len(r.Monsters()), len(r.Items()))
	}
	if goblin.HP != 5 || goblin.Symbol != 'g' {
		t.Errorf("Monster not built from its definition: %+v", goblin)
	}

	var _ world.Occupancy = r
}

func TestPartyMove(t *testing.T) {
	g := world.NewGrid(5, 3, 1)
	for x := 1; x <= 3; x++ {
		g.SetTile(world.Position{X: x, Y: 1}, world.TileFloor)
	}
	g.SetTile(world.Position{X: 3, Y: 1}, world.TileWater)

	p := NewParty(world.Position{X: 1, Y: 1})
	if !p.Move(g, 1, 0) {
		t.Fatal("Party should step onto floor")
	}
	if p.Move(g, 1, 0) {
		t.Error("Party without swimming should not enter water")
	}
	if p.Move(g, 0, -1) {
		t.Error("Party should not walk into walls")
	}

	p.Caps = world.CapSwim
	if !p.Move(g, 1, 0) || p.Pos != (world.Position{X: 3, Y: 1}) {
		t.Error("Swimming party should enter water")
	}
}
