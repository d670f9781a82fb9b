// Package entity provides the things that stand on a floor: the player's
// party and the monsters and items the spawner places.
package entity

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/deepfloor/internal/gamedata"
	"github.com/samdwyer/deepfloor/internal/world"
)

// Kind separates creatures from loot.
type Kind int

const (
	KindMonster Kind = iota
	KindItem
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMonster:
		return "monster"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Actor is a placed monster or item.
type Actor struct {
	ID        uuid.UUID      // Stable across regenerations of the same floor
	Kind      Kind           // Monster or item
	DefID     string         // Definition identifier (e.g., "goblin")
	Name      string         // Display name
	Symbol    rune           // Display symbol
	Color     tcell.Color    // Display color
	Pos       world.Position // Position on the floor
	RoomIndex int            // Index of the room the actor was placed in
	HP        int            // Current hit points, 0 for items
	MaxHP     int            // Maximum hit points, 0 for items
	Guardian  bool           // Placed to guard a treasure room
}

// NewMonster creates a monster from its definition.
func NewMonster(id uuid.UUID, def gamedata.MonsterDef, pos world.Position, roomIndex int) *Actor {
	return &Actor{
		ID:        id,
		Kind:      KindMonster,
		DefID:     def.ID,
		Name:      def.Name,
		Symbol:    def.GlyphRune(),
		Color:     def.TCellColor(),
		Pos:       pos,
		RoomIndex: roomIndex,
		HP:        def.HP,
		MaxHP:     def.HP,
	}
}

// NewItem creates an item from its definition.
func NewItem(id uuid.UUID, def gamedata.ItemDef, pos world.Position, roomIndex int) *Actor {
	return &Actor{
		ID:        id,
		Kind:      KindItem,
		DefID:     def.ID,
		Name:      def.Name,
		Symbol:    def.GlyphRune(),
		Color:     def.TCellColor(),
		Pos:       pos,
		RoomIndex: roomIndex,
	}
}

// Blocks reports whether the actor stops others from entering its tile.
func (a *Actor) Blocks() bool {
	return a.Kind == KindMonster
}
