package entity

import "github.com/samdwyer/deepfloor/internal/world"

// Roster is the set of actors on the current floor. It answers the occupancy
// queries path search and placement rely on.
type Roster struct {
	actors []*Actor
	byPos  map[world.Position][]*Actor
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{byPos: make(map[world.Position][]*Actor)}
}

// Add places an actor.
func (r *Roster) Add(a *Actor) {
	r.actors = append(r.actors, a)
	r.byPos[a.Pos] = append(r.byPos[a.Pos], a)
}

// At returns the actors standing on p.
func (r *Roster) At(p world.Position) []*Actor {
	return r.byPos[p]
}

// Occupied reports whether a blocking actor stands on p. Items never block.
func (r *Roster) Occupied(p world.Position) bool {
	for _, a := range r.byPos[p] {
		if a.Blocks() {
			return true
		}
	}
	return false
}

// Taken reports whether any actor, blocking or not, stands on p.
func (r *Roster) Taken(p world.Position) bool {
	return len(r.byPos[p]) > 0
}

// All returns every actor in placement order.
func (r *Roster) All() []*Actor {
	return r.actors
}

// Monsters returns the placed monsters.
func (r *Roster) Monsters() []*Actor {
	return r.filter(KindMonster)
}

// Items returns the placed items.
func (r *Roster) Items() []*Actor {
	return r.filter(KindItem)
}

// Len returns the number of actors.
func (r *Roster) Len() int {
	return len(r.actors)
}

func (r *Roster) filter(kind Kind) []*Actor {
	var out []*Actor
	for _, a := range r.actors {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
