package spawn

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/deepfloor/internal/entity"
	"github.com/samdwyer/deepfloor/internal/world"
)

// idSpace namespaces actor IDs so the same floor always yields the same IDs.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("deepfloor/actors"))

// Population is everything placed on one floor.
type Population struct {
	Roster       *entity.Roster
	Depth        int
	Seed         int64
	TreasureRoom int // index of the treasure room, -1 if none
	AmuletPlaced bool

	ordinal int
}

// NewPopulation creates an empty population for a floor.
func NewPopulation(seed int64, depth int) *Population {
	return &Population{
		Roster:       entity.NewRoster(),
		Depth:        depth,
		Seed:         seed,
		TreasureRoom: -1,
	}
}

// nextID derives the ID of the next placed actor from seed, depth and order.
func (p *Population) nextID() uuid.UUID {
	p.ordinal++
	return uuid.NewSHA1(idSpace, []byte(fmt.Sprintf("%d/%d/%d", p.Seed, p.Depth, p.ordinal)))
}

// free reports whether p can take a new actor: walkable ground that holds no
// actor, the exit or the player start.
func (p *Population) free(g *world.Grid, pos world.Position) bool {
	if !g.IsWalkable(pos) || p.Roster.Taken(pos) {
		return false
	}
	if exit, ok := g.ExitPosition(); ok && exit == pos {
		return false
	}
	if start, ok := g.PlayerStart(); ok && start == pos {
		return false
	}
	return true
}

// Monsters returns the placed monsters.
func (p *Population) Monsters() []*entity.Actor {
	return p.Roster.Monsters()
}

// Items returns the placed items.
func (p *Population) Items() []*entity.Actor {
	return p.Roster.Items()
}
