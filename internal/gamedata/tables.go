// Package gamedata holds the embedded spawn tables for monsters and items and
// the weighted registries the spawner draws from.
package gamedata

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidTable is wrapped by every validation failure of a spawn table.
var ErrInvalidTable = errors.New("gamedata: invalid table")

//go:embed *.json
var dataFS embed.FS

// validator is implemented by table files that check their own contents.
type validator interface {
	Validate() error
}

// Load reads and unmarshals a JSON file from the embedded filesystem. Tables
// that implement Validate are checked before they are returned.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}
	return decode[T](filename, content)
}

func decode[T any](filename string, content []byte) (T, error) {
	var result T
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}
	if v, ok := any(&result).(validator); ok {
		if err := v.Validate(); err != nil {
			return result, fmt.Errorf("%s: %w", filename, err)
		}
	}
	return result, nil
}

func (r SpawnRule) validate(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: entry without id", ErrInvalidTable)
	case r.BaseWeight < 0:
		return fmt.Errorf("%w: %s has negative weight", ErrInvalidTable, id)
	case r.LevelMax > 0 && r.LevelMax < r.LevelMin:
		return fmt.Errorf("%w: %s has levelMax below levelMin", ErrInvalidTable, id)
	}
	return nil
}

// Validate rejects duplicate ids and broken spawn rules.
func (f *MonstersFile) Validate() error {
	seen := make(map[string]bool, len(f.Monsters))
	for _, m := range f.Monsters {
		if err := m.SpawnRule.validate(m.ID); err != nil {
			return err
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: duplicate monster %s", ErrInvalidTable, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// Validate rejects duplicate ids, broken spawn rules and items whose category
// is not declared.
func (f *ItemsFile) Validate() error {
	categories := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		if c.Weight < 0 {
			return fmt.Errorf("%w: category %s has negative weight", ErrInvalidTable, c.ID)
		}
		categories[c.ID] = true
	}

	seen := make(map[string]bool, len(f.Items))
	for _, it := range f.Items {
		if err := it.SpawnRule.validate(it.ID); err != nil {
			return err
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: duplicate item %s", ErrInvalidTable, it.ID)
		}
		if !categories[it.Category] {
			return fmt.Errorf("%w: item %s has unknown category %q", ErrInvalidTable, it.ID, it.Category)
		}
		seen[it.ID] = true
	}
	return nil
}
