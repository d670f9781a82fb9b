package level

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samdwyer/deepfloor/internal/spawn"
	"github.com/samdwyer/deepfloor/internal/world"
)

func newCoordinator(t *testing.T, cfg Config) *Coordinator {
	t.Helper()
	s, err := spawn.Load()
	if err != nil {
		t.Fatalf("Failed to load spawn tables: %v", err)
	}
	return New(cfg, s)
}

func TestGenerateSeed42Scenario(t *testing.T) {
	c := newCoordinator(t, DefaultConfig())

	g, err := c.Generate(context.Background(), 119, 30, 42, true)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	start, ok := g.PlayerStart()
	if !ok {
		t.Fatal("Expected a player start")
	}
	switch g.TypeAt(start) {
	case world.TileFloor:
	case world.TileWater:
		if !g.IsWalkableFor(start, c.Party().Caps) {
			t.Errorf("Player starts in water without being able to swim")
		}
	default:
		t.Errorf("Player start is on %v", g.TypeAt(start))
	}

	exit, ok := g.ExitPosition()
	if !ok {
		t.Fatal("Expected exactly one exit")
	}
	if exit == start {
		t.Error("Exit must differ from the player start")
	}
	if path := g.FindPath(start, exit); len(path) == 0 {
		t.Error("Expected a path from the player start to the exit")
	}
	if c.Party().Pos != start {
		t.Errorf("Party at %v, want the player start %v", c.Party().Pos, start)
	}
	if room := c.PartyRoom(); room < 0 || !g.Rooms()[room].Contains(start) {
		t.Errorf("PartyRoom = %d, want the room holding %v", room, start)
	}
}

func TestGenerateDeterministicTiles(t *testing.T) {
	ctx := context.Background()
	g1, err := newCoordinator(t, DefaultConfig()).Generate(ctx, 119, 30, 2024, true)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g2, err := newCoordinator(t, DefaultConfig()).Generate(ctx, 119, 30, 2024, false)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	g1.Each(func(p world.Position, tile world.Tile) {
		if g2.TypeAt(p) != tile.Type {
			t.Fatalf("Tile at %v differs between populated and unpopulated floors", p)
		}
	})
}

func TestVisibilityDirtyFlag(t *testing.T) {
	c := newCoordinator(t, DefaultConfig())
	if _, changed := c.RefreshVisibility(); changed {
		t.Error("No floor yet: nothing to refresh")
	}
	if _, err := c.Generate(context.Background(), 119, 30, 42, false); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	visible, changed := c.RefreshVisibility()
	if !changed || !visible.Has(c.Party().Pos) {
		t.Fatal("Generation should request a visibility refresh from the party")
	}
	if c.Phase() != PhaseReady {
		t.Errorf("Phase = %v, want ready", c.Phase())
	}
	if _, changed := c.RefreshVisibility(); changed {
		t.Error("Visibility should not recompute without a request")
	}

	moved := false
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if c.MoveParty(d[0], d[1]) {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("Party could not move anywhere from the start")
	}
	if _, changed := c.RefreshVisibility(); !changed {
		t.Error("Moving should request a visibility refresh")
	}
}

func TestMovePartyBlocked(t *testing.T) {
	c := newCoordinator(t, DefaultConfig())
	if _, err := c.Generate(context.Background(), 119, 30, 42, false); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	c.RefreshVisibility()

	// Walk west until something stops the party.
	for i := 0; i < c.Grid().Width; i++ {
		if !c.MoveParty(-1, 0) {
			break
		}
	}
	c.RefreshVisibility()
	if c.MoveParty(-1, 0) {
		t.Error("Party stepped onto an unwalkable tile")
	}
	if _, changed := c.RefreshVisibility(); changed {
		t.Error("A blocked move should not request visibility")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newCoordinator(t, DefaultConfig())
	if _, err := c.Generate(ctx, 119, 30, 42, true); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	c.RefreshVisibility()
	original := c.Grid()

	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored := newCoordinator(t, DefaultConfig())
	msg, err := restored.Load(ctx, &buf)
	if err != nil || msg != "" {
		t.Fatalf("Load failed: %q, %v", msg, err)
	}

	g := restored.Grid()
	original.Each(func(p world.Position, tile world.Tile) {
		if g.TypeAt(p) != tile.Type || g.IsExplored(p) != tile.Explored {
			t.Fatalf("Restored floor differs at %v", p)
		}
	})
	if restored.Population().Roster.Len() != 0 {
		t.Error("Restored floor should not respawn actors")
	}
	s1, _ := original.PlayerStart()
	s2, _ := g.PlayerStart()
	if s1 != s2 {
		t.Errorf("Player start moved on reload: %v != %v", s1, s2)
	}
}

func TestLoadFallsBackToFreshFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	c := newCoordinator(t, cfg)

	msg, err := c.Load(context.Background(), strings.NewReader(`{"width":119,"height":30,"seed":42,"explored":[true]}`))

	if !errors.Is(err, world.ErrCorruptSnapshot) {
		t.Errorf("Expected ErrCorruptSnapshot, got %v", err)
	}
	if msg != world.RestoreFailedMessage {
		t.Errorf("Expected the restore failure message, got %q", msg)
	}
	if c.Grid() == nil || c.Grid().Seed() != 99 {
		t.Error("A fresh floor should replace the unusable save")
	}
}

func TestLoadRejectsChangedSettings(t *testing.T) {
	ctx := context.Background()
	saved := newCoordinator(t, DefaultConfig())
	if _, err := saved.Generate(ctx, 119, 30, 42, false); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	var buf bytes.Buffer
	if err := saved.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.World.WaterChance = 40
	c := newCoordinator(t, cfg)

	msg, err := c.Load(ctx, &buf)
	if !errors.Is(err, world.ErrLayoutMismatch) {
		t.Errorf("Expected ErrLayoutMismatch, got %v", err)
	}
	if msg != world.RestoreFailedMessage {
		t.Errorf("Expected the restore failure message, got %q", msg)
	}
	if c.Grid() == nil || c.Grid().Seed() != 7 {
		t.Error("A fresh floor should replace the save")
	}
}

func TestDescend(t *testing.T) {
	ctx := context.Background()
	c := newCoordinator(t, DefaultConfig())

	if err := c.Descend(ctx); !errors.Is(err, ErrNoFloor) {
		t.Errorf("Descend without a floor: got %v, want ErrNoFloor", err)
	}
	if _, err := c.Generate(ctx, 119, 30, 42, true); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	first := c.Grid()

	if err := c.Descend(ctx); err != nil {
		t.Fatalf("Descend failed: %v", err)
	}
	if c.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", c.Depth())
	}
	if c.Grid() == first || c.Grid().Seed() == first.Seed() {
		t.Error("Descending should replace the floor with a fresh seed")
	}
	if c.Population().Depth != 2 {
		t.Errorf("New floor populated for depth %d", c.Population().Depth)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DEEPFLOOR_SEED", "1234")
	t.Setenv("DEEPFLOOR_WIDTH", "80")
	t.Setenv("DEEPFLOOR_DEPTH", "3")
	t.Setenv("DEEPFLOOR_POPULATE", "false")
	t.Setenv("DEEPFLOOR_CORRIDORS", "z")
	t.Setenv("DEEPFLOOR_HEIGHT", "tall")

	cfg := ConfigFromEnv()

	if cfg.Seed != 1234 || cfg.Width != 80 || cfg.Depth != 3 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.Populate {
		t.Error("DEEPFLOOR_POPULATE=false should disable population")
	}
	if cfg.World.Corridors != world.CorridorZ {
		t.Error("DEEPFLOOR_CORRIDORS=z should select Z corridors")
	}
	if cfg.Height != world.DefaultHeight {
		t.Errorf("Invalid height should keep the default, got %d", cfg.Height)
	}
}
