package world

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(DefaultConfig())
	g, err := gen.Generate(ctx, 80, 40, 777)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g.ComputeVisibility(g.Rooms()[0].Center(), 10)

	var buf bytes.Buffer
	if err := Save(&buf, g); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored, err := Load(ctx, &buf, gen)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if restored.Width != g.Width || restored.Height != g.Height || restored.Seed() != g.Seed() {
		t.Fatalf("Restored %dx%d seed %d, want %dx%d seed %d",
			restored.Width, restored.Height, restored.Seed(), g.Width, g.Height, g.Seed())
	}
	g.Each(func(p Position, tile Tile) {
		if restored.TypeAt(p) != tile.Type {
			t.Errorf("Tile type at %v: %v != %v", p, restored.TypeAt(p), tile.Type)
		}
		if restored.IsExplored(p) != tile.Explored {
			t.Errorf("Explored at %v: %v != %v", p, restored.IsExplored(p), tile.Explored)
		}
	})
}

func TestLoadCorruptSnapshots(t *testing.T) {
	gen := NewGenerator(DefaultConfig())

	tests := []struct {
		name string
		data string
	}{
		{"short explored", `{"width":10,"height":10,"seed":1,"explored":[true,false]}`},
		{"missing explored", `{"width":10,"height":10,"seed":1}`},
		{"bad dimensions", `{"width":0,"height":10,"seed":1,"explored":[]}`},
		{"oversized", `{"width":5000,"height":3,"seed":1,"explored":[]}`},
		{"overflowing area", `{"width":4294967296,"height":4294967296,"seed":1,"explored":[]}`},
		{"not json", `floor`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), strings.NewReader(tt.data), gen)
			if !errors.Is(err, ErrCorruptSnapshot) {
				t.Errorf("Expected ErrCorruptSnapshot, got %v", err)
			}
		})
	}
}

func TestLoadLayoutMismatch(t *testing.T) {
	ctx := context.Background()
	g, err := NewGenerator(DefaultConfig()).Generate(ctx, 60, 30, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	var buf bytes.Buffer
	if err := Save(&buf, g); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Corridors = CorridorZ
	_, err = Load(ctx, &buf, NewGenerator(cfg))
	if !errors.Is(err, ErrLayoutMismatch) || !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("Expected a layout mismatch, got %v", err)
	}
}

func TestSnapshotApplyOnlySets(t *testing.T) {
	g := carvedGrid(5, 5)
	g.markExplored(Position{X: 0, Y: 0})

	s := Snapshot{Width: 5, Height: 5, Seed: 1, Explored: make([]bool, 25)}
	s.Explored[24] = true

	if err := s.Apply(g); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !g.IsExplored(Position{X: 0, Y: 0}) || !g.IsExplored(Position{X: 4, Y: 4}) {
		t.Error("Apply should set flags without clearing existing ones")
	}

	wrong := Snapshot{Width: 6, Height: 5, Seed: 1, Explored: make([]bool, 30)}
	if err := wrong.Apply(g); !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("Expected dimension mismatch error, got %v", err)
	}
}
