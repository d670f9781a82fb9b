// Package spawn places the player start, the exit, monsters and items on a
// freshly carved floor.
package spawn

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepfloor/internal/entity"
	"github.com/samdwyer/deepfloor/internal/gamedata"
	"github.com/samdwyer/deepfloor/internal/logger"
	"github.com/samdwyer/deepfloor/internal/telemetry"
	"github.com/samdwyer/deepfloor/internal/world"
)

const (
	MaxPlacementAttempts = 100 // Rejection-sampling ceiling per placement
	MaxRoomMonsters      = 6
	MaxRoomItems         = 4
	ItemChance           = 75 // Percent chance for each rolled item to appear
	FinalDepth           = 10 // Depth the amulet is placed on

	maxTreasureChance = 25
	amuletID          = "amulet"
)

// Spawner chooses where things go. It lives for a whole game run so unique
// kinds are placed at most once.
type Spawner struct {
	monsters *gamedata.Registry[gamedata.MonsterDef]
	items    *gamedata.ItemCatalog
	uniques  mapset.Set[string]
	log      *logrus.Entry
}

// New creates a spawner drawing from the given tables.
func New(monsters *gamedata.Registry[gamedata.MonsterDef], items *gamedata.ItemCatalog) *Spawner {
	return &Spawner{
		monsters: monsters,
		items:    items,
		uniques:  mapset.New[string](),
		log:      logger.Component("spawn"),
	}
}

// Load creates a spawner from the embedded monster and item tables.
func Load() (*Spawner, error) {
	monsters, err := gamedata.LoadMonsterRegistry()
	if err != nil {
		return nil, err
	}
	items, err := gamedata.LoadItemCatalog()
	if err != nil {
		return nil, err
	}
	return New(monsters, items), nil
}

// Spawned reports whether a unique kind has already been placed this run.
func (s *Spawner) Spawned(id string) bool {
	return s.uniques.Has(id)
}

// Populate runs placement after carving: player start, exit, then, when
// populate is set, monsters and items. The returned population is installed
// as the grid's occupancy.
func (s *Spawner) Populate(ctx context.Context, g *world.Grid, depth int, populate bool) *Population {
	tracer := telemetry.Tracer("spawn")
	_, span := tracer.Start(ctx, "floor.spawn")
	defer span.End()

	pop := NewPopulation(g.Seed(), depth)
	g.SetOccupancy(pop.Roster)

	rooms := g.Rooms()
	if len(rooms) == 0 {
		s.log.WithField("seed", g.Seed()).Warn("Floor has no rooms to spawn into")
		return pop
	}

	s.PlacePlayer(g, rooms[0])
	s.PlaceExit(g, rooms)

	if populate {
		pop.TreasureRoom = s.rollTreasureRoom(g, depth, len(rooms))
		for i := range rooms {
			if i == pop.TreasureRoom {
				s.fillTreasureRoom(g, pop, i, depth)
				continue
			}
			s.PopulateRoom(g, pop, i, depth, i == 0)
		}
		if depth >= FinalDepth {
			s.placeAmulet(g, pop)
		}
	}

	span.SetAttributes(
		attribute.Int("spawn.depth", depth),
		attribute.Int("spawn.monsters", len(pop.Monsters())),
		attribute.Int("spawn.items", len(pop.Items())),
		attribute.Int("spawn.treasure_room", pop.TreasureRoom),
	)
	s.log.WithFields(logrus.Fields{
		"seed":     g.Seed(),
		"depth":    depth,
		"monsters": len(pop.Monsters()),
		"items":    len(pop.Items()),
	}).Debug("Floor populated")

	return pop
}

// PlacePlayer picks a walkable tile in room for the player start.
func (s *Spawner) PlacePlayer(g *world.Grid, room world.Room) (world.Position, bool) {
	pos, ok := s.sample(g, room, g.IsWalkable)
	if !ok {
		s.log.WithField("room", room).Debug("No walkable tile for the player start")
		return world.Position{}, false
	}
	g.SetPlayerStart(pos)
	return pos, true
}

// PlaceExit picks a random room and a walkable tile in it, never the player
// start. Rooms without such a tile are passed over in order.
func (s *Spawner) PlaceExit(g *world.Grid, rooms []world.Room) (world.Position, bool) {
	if len(rooms) == 0 {
		return world.Position{}, false
	}
	start, hasStart := g.PlayerStart()
	legal := func(p world.Position) bool {
		return g.IsWalkable(p) && !(hasStart && p == start)
	}

	first := g.SpawnDice().Roll(0, len(rooms)-1)
	for n := range rooms {
		room := rooms[(first+n)%len(rooms)]
		if pos, ok := s.sample(g, room, legal); ok {
			g.SetExit(pos)
			return pos, true
		}
	}
	s.log.Debug("No legal tile for the exit")
	return world.Position{}, false
}

// PopulateRoom places a depth-scaled number of monsters and items in one room.
// The first room is never populated. Returns the number of actors placed.
func (s *Spawner) PopulateRoom(g *world.Grid, pop *Population, roomIndex, depth int, first bool) int {
	if first {
		return 0
	}
	rooms := g.Rooms()
	if roomIndex < 0 || roomIndex >= len(rooms) {
		return 0
	}
	room := rooms[roomIndex]
	dice := g.SpawnDice()
	placed := 0

	monsters := dice.Roll(0, min(MaxRoomMonsters, 1+depth/2))
	for i := 0; i < monsters; i++ {
		if s.placeMonster(g, pop, room, roomIndex, depth, false) {
			placed++
		}
	}

	items := dice.Roll(0, MaxRoomItems)
	for i := 0; i < items; i++ {
		if dice.Percent() > ItemChance {
			continue
		}
		if s.placeItem(g, pop, room, roomIndex, depth, "") {
			placed++
		}
	}
	return placed
}

func (s *Spawner) placeMonster(g *world.Grid, pop *Population, room world.Room, roomIndex, depth int, guardian bool) bool {
	pos, ok := s.sample(g, room, func(p world.Position) bool { return pop.free(g, p) })
	if !ok {
		s.log.WithField("room", roomIndex).Debug("Room full, skipping monster")
		return false
	}
	def, ok := s.monsters.Pick(depth, g.SpawnDice(), s.skipMonster)
	if !ok {
		return false
	}
	s.markUnique(def.ID, def.Unique)

	m := entity.NewMonster(pop.nextID(), def, pos, roomIndex)
	m.Guardian = guardian
	pop.Roster.Add(m)
	return true
}

func (s *Spawner) placeItem(g *world.Grid, pop *Population, room world.Room, roomIndex, depth int, category string) bool {
	pos, ok := s.sample(g, room, func(p world.Position) bool { return pop.free(g, p) })
	if !ok {
		s.log.WithField("room", roomIndex).Debug("Room full, skipping item")
		return false
	}

	var def gamedata.ItemDef
	if category == "" {
		def, ok = s.items.PickItem(depth, g.SpawnDice(), s.skipItem)
	} else {
		def, ok = s.items.PickCategory(category, depth, g.SpawnDice(), s.skipItem)
	}
	if !ok {
		return false
	}
	s.markUnique(def.ID, def.Unique)

	pop.Roster.Add(entity.NewItem(pop.nextID(), def, pos, roomIndex))
	return true
}

func (s *Spawner) skipMonster(def gamedata.MonsterDef) bool {
	return def.Unique && s.uniques.Has(def.ID)
}

func (s *Spawner) skipItem(def gamedata.ItemDef) bool {
	return def.Unique && s.uniques.Has(def.ID)
}

func (s *Spawner) markUnique(id string, unique bool) {
	if unique {
		s.uniques.Put(id)
	}
}

// sample draws random tiles from room until one passes ok, giving up after
// MaxPlacementAttempts draws and falling back to a scan of the whole room.
func (s *Spawner) sample(g *world.Grid, room world.Room, ok func(world.Position) bool) (world.Position, bool) {
	dice := g.SpawnDice()
	for i := 0; i < MaxPlacementAttempts; i++ {
		p := world.Position{
			X: dice.Roll(room.Begin.X, room.End.X),
			Y: dice.Roll(room.Begin.Y, room.End.Y),
		}
		if ok(p) {
			return p, true
		}
	}

	var found world.Position
	hit := false
	room.Each(func(p world.Position) {
		if !hit && ok(p) {
			found, hit = p, true
		}
	})
	return found, hit
}
