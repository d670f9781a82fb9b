package gamedata

import "github.com/gdamore/tcell/v2"

// ItemDef defines an item kind loaded from JSON.
type ItemDef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Glyph    string `json:"glyph"`
	Color    string `json:"color"`
	Category string `json:"category"` // potion, scroll, weapon, ...
	SpawnRule
}

// Key returns the item's identifier.
func (i ItemDef) Key() string {
	return i.ID
}

// Rule returns the item's spawn rule.
func (i ItemDef) Rule() SpawnRule {
	return i.SpawnRule
}

// GlyphRune returns the glyph as a rune for rendering.
func (i ItemDef) GlyphRune() rune {
	return glyphRune(i.Glyph)
}

// TCellColor returns the color as a tcell.Color.
func (i ItemDef) TCellColor() tcell.Color {
	return colorOr(i.Color, tcell.ColorYellow)
}

// CategoryDef weights a whole item category against the others.
type CategoryDef struct {
	ID     string `json:"id"`
	Weight int    `json:"weight"`
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Categories []CategoryDef `json:"categories"`
	Items      []ItemDef     `json:"items"`
}

// LoadItems loads the item file from the embedded items.json.
func LoadItems() (ItemsFile, error) {
	return Load[ItemsFile]("items.json")
}
