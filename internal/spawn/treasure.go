package spawn

import (
	"github.com/samdwyer/deepfloor/internal/world"
)

// rollTreasureRoom decides whether this floor has a treasure room and which.
// The chance grows with depth; the first room never qualifies.
func (s *Spawner) rollTreasureRoom(g *world.Grid, depth, rooms int) int {
	if depth < 2 || rooms < 2 {
		return -1
	}
	dice := g.SpawnDice()
	if dice.Percent() > min(maxTreasureChance, 5+2*depth) {
		return -1
	}
	return dice.Roll(1, rooms-1)
}

// fillTreasureRoom places guardians, a gold pile and one item drawn as if the
// floor were two levels deeper.
func (s *Spawner) fillTreasureRoom(g *world.Grid, pop *Population, roomIndex, depth int) {
	room := g.Rooms()[roomIndex]
	dice := g.SpawnDice()

	guardians := dice.Roll(1, 3)
	for i := 0; i < guardians; i++ {
		s.placeMonster(g, pop, room, roomIndex, depth, true)
	}

	s.placeItem(g, pop, room, roomIndex, depth, "gold")
	s.placeItem(g, pop, room, roomIndex, depth+2, "")

	s.log.WithField("room", roomIndex).Debug("Treasure room placed")
}

// placeAmulet puts the amulet in a random room on the final floor, once per run.
func (s *Spawner) placeAmulet(g *world.Grid, pop *Population) {
	if s.uniques.Has(amuletID) {
		return
	}
	rooms := g.Rooms()
	i := g.SpawnDice().Roll(0, len(rooms)-1)
	if s.placeItem(g, pop, rooms[i], i, pop.Depth, "artifact") {
		pop.AmuletPlaced = true
	}
}
