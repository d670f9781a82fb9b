package gamedata

import "errors"

// Roller produces uniform integers in [low, high].
type Roller interface {
	Roll(low, high int) int
}

// Spawnable is a kind that can be drawn from a weighted table.
type Spawnable interface {
	Key() string
	Rule() SpawnRule
}

// Registry holds loaded definitions and draws from them by depth-scaled weight.
type Registry[T Spawnable] struct {
	defs []T
	byID map[string]int
}

// NewRegistry creates a registry from loaded definitions.
func NewRegistry[T Spawnable](defs []T) *Registry[T] {
	byID := make(map[string]int, len(defs))
	for i, d := range defs {
		byID[d.Key()] = i
	}
	return &Registry[T]{defs: defs, byID: byID}
}

// Pick draws one definition weighted for depth. Definitions rejected by skip
// are left out of the draw. Returns false when nothing is eligible.
func (r *Registry[T]) Pick(depth int, roller Roller, skip func(T) bool) (T, bool) {
	var zero T

	weights := make([]int, len(r.defs))
	total := 0
	for i, d := range r.defs {
		if skip != nil && skip(d) {
			continue
		}
		weights[i] = d.Rule().Weight(depth)
		total += weights[i]
	}
	if total <= 0 {
		return zero, false
	}

	roll := roller.Roll(1, total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll <= cumulative {
			return r.defs[i], true
		}
	}
	return zero, false
}

// TotalWeight returns the summed weight of every definition at depth.
func (r *Registry[T]) TotalWeight(depth int) int {
	total := 0
	for _, d := range r.defs {
		total += d.Rule().Weight(depth)
	}
	return total
}

// GetByID returns the definition with the given ID.
func (r *Registry[T]) GetByID(id string) (T, bool) {
	i, ok := r.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return r.defs[i], true
}

// All returns all definitions.
func (r *Registry[T]) All() []T {
	return r.defs
}

// Count returns the number of definitions in the registry.
func (r *Registry[T]) Count() int {
	return len(r.defs)
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*Registry[MonsterDef], error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return NewRegistry(monsters), nil
}

// ItemCatalog draws items in two steps: a category by its fixed weight, then
// an item inside that category by depth-scaled weight.
type ItemCatalog struct {
	*Registry[ItemDef]
	categories []CategoryDef
}

// NewItemCatalog creates a catalog from loaded categories and items.
func NewItemCatalog(categories []CategoryDef, items []ItemDef) *ItemCatalog {
	return &ItemCatalog{
		Registry:   NewRegistry(items),
		categories: categories,
	}
}

// LoadItemCatalog loads the catalog from the embedded items.json.
func LoadItemCatalog() (*ItemCatalog, error) {
	file, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(file.Items) == 0 || len(file.Categories) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewItemCatalog(file.Categories, file.Items), nil
}

// PickItem draws a category, then an item of that category, for depth.
// Categories with nothing eligible at this depth are not drawn.
func (c *ItemCatalog) PickItem(depth int, roller Roller, skip func(ItemDef) bool) (ItemDef, bool) {
	eligible := make([]CategoryDef, 0, len(c.categories))
	total := 0
	for _, cat := range c.categories {
		if cat.Weight > 0 && c.hasEligible(cat.ID, depth, skip) {
			eligible = append(eligible, cat)
			total += cat.Weight
		}
	}
	if total == 0 {
		return ItemDef{}, false
	}

	roll := roller.Roll(1, total)
	category := eligible[len(eligible)-1].ID
	cumulative := 0
	for _, cat := range eligible {
		cumulative += cat.Weight
		if roll <= cumulative {
			category = cat.ID
			break
		}
	}

	return c.PickCategory(category, depth, roller, skip)
}

// PickCategory draws an item from one category only.
func (c *ItemCatalog) PickCategory(category string, depth int, roller Roller, skip func(ItemDef) bool) (ItemDef, bool) {
	return c.Pick(depth, roller, func(item ItemDef) bool {
		return item.Category != category || (skip != nil && skip(item))
	})
}

func (c *ItemCatalog) hasEligible(category string, depth int, skip func(ItemDef) bool) bool {
	for _, item := range c.All() {
		if item.Category != category || (skip != nil && skip(item)) {
			continue
		}
		if item.Rule().Weight(depth) > 0 {
			return true
		}
	}
	return false
}
