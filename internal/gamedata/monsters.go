package gamedata

import "github.com/gdamore/tcell/v2"

// SpawnRule controls how often a kind appears as dungeon depth grows.
type SpawnRule struct {
	BaseWeight   int     `json:"baseWeight"`   // Relative frequency on depth 1
	LevelMin     int     `json:"levelMin"`     // Shallowest depth the kind appears on
	LevelMax     int     `json:"levelMax"`     // Deepest depth, 0 for no limit
	LevelScaling float64 `json:"levelScaling"` // Weight change per depth below the first
	Unique       bool    `json:"unique"`       // At most one per game run
}

// Weight returns the spawn weight at a depth. Kinds outside their depth range
// weigh 0; kinds inside it weigh at least 1.
func (r SpawnRule) Weight(depth int) int {
	if depth < r.LevelMin {
		return 0
	}
	if r.LevelMax > 0 && depth > r.LevelMax {
		return 0
	}
	factor := 1.0 + r.LevelScaling*float64(depth-1)
	return max(1, int(float64(r.BaseWeight)*factor))
}

// MonsterDef defines a monster kind loaded from JSON.
type MonsterDef struct {
	ID      string `json:"id"`      // Unique identifier (e.g., "goblin")
	Name    string `json:"name"`    // Display name (e.g., "Goblin")
	Glyph   string `json:"glyph"`   // Single character for rendering (e.g., "g")
	Color   string `json:"color"`   // Hex color code (e.g., "#00FF00")
	HP      int    `json:"hp"`      // Base hit points
	Attack  int    `json:"attack"`  // Base attack power
	Defense int    `json:"defense"` // Base defense value
	SpawnRule
}

// Key returns the monster's identifier.
func (m MonsterDef) Key() string {
	return m.ID
}

// Rule returns the monster's spawn rule.
func (m MonsterDef) Rule() SpawnRule {
	return m.SpawnRule
}

// GlyphRune returns the glyph as a rune for rendering.
func (m MonsterDef) GlyphRune() rune {
	return glyphRune(m.Glyph)
}

// TCellColor returns the color as a tcell.Color.
func (m MonsterDef) TCellColor() tcell.Color {
	return colorOr(m.Color, tcell.ColorWhite)
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json file.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}

func glyphRune(glyph string) rune {
	for _, r := range glyph {
		return r
	}
	return '?'
}
