package entity

import "github.com/samdwyer/deepfloor/internal/world"

// Party represents the player's party of adventurers.
// On the floor it is displayed as a single symbol.
type Party struct {
	Pos    world.Position   // Current position on the floor
	Symbol rune             // Display symbol
	Caps   world.Capability // Movement abilities
}

// NewParty creates a new party at the given position.
func NewParty(pos world.Position) *Party {
	return &Party{
		Pos:    pos,
		Symbol: '@',
	}
}

// Move steps the party by the given delta if the destination is walkable for
// it. Returns whether the party moved.
func (p *Party) Move(g *world.Grid, dx, dy int) bool {
	next := p.Pos.Add(world.Position{X: dx, Y: dy})
	if !g.IsWalkableFor(next, p.Caps) {
		return false
	}
	p.Pos = next
	return true
}
