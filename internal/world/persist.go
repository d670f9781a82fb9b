package world

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepfloor/internal/logger"
	"github.com/samdwyer/deepfloor/internal/telemetry"
)

// ErrCorruptSnapshot is returned when a snapshot does not match its own dimensions.
var ErrCorruptSnapshot = errors.New("world: corrupt floor snapshot")

// ErrLayoutMismatch is returned when a snapshot was saved under different
// generation settings than the floor source uses now.
var ErrLayoutMismatch = fmt.Errorf("%w: generation settings changed", ErrCorruptSnapshot)

// RestoreFailedMessage is the text shown to the player when a saved floor
// cannot be restored and a fresh one is generated instead.
const RestoreFailedMessage = "Your saved floor could not be restored. A new floor has been generated."

// Snapshot is the persisted state of a floor. Tiles are not stored: they are
// regenerated from the seed, and only the explored flags are applied on top.
// Layout records the generation settings, since the same seed carves a
// different floor under different settings.
type Snapshot struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Seed     int64  `json:"seed"`
	Layout   string `json:"layout,omitempty"`
	Explored []bool `json:"explored"`
}

// Snapshot captures the persisted state of the grid.
func (g *Grid) Snapshot() Snapshot {
	explored := make([]bool, len(g.tiles))
	for i, t := range g.tiles {
		explored[i] = t.Explored
	}
	return Snapshot{
		Width:    g.Width,
		Height:   g.Height,
		Seed:     g.Seed(),
		Layout:   g.layout,
		Explored: explored,
	}
}

// Validate checks that the explored flags cover the grid exactly.
func (s Snapshot) Validate() error {
	if s.Width < minDimension || s.Height < minDimension || s.Width > MaxDimension || s.Height > MaxDimension {
		return fmt.Errorf("%w: dimensions %dx%d", ErrCorruptSnapshot, s.Width, s.Height)
	}
	if len(s.Explored) != s.Width*s.Height {
		return fmt.Errorf("%w: %d explored flags for a %dx%d floor",
			ErrCorruptSnapshot, len(s.Explored), s.Width, s.Height)
	}
	return nil
}

// Apply copies the explored flags onto g. Flags are only ever set, never cleared.
func (s Snapshot) Apply(g *Grid) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if g.Width != s.Width || g.Height != s.Height {
		return fmt.Errorf("%w: snapshot is %dx%d, grid is %dx%d",
			ErrCorruptSnapshot, s.Width, s.Height, g.Width, g.Height)
	}
	for i, explored := range s.Explored {
		if explored {
			g.tiles[i].Explored = true
		}
	}
	return nil
}

// Save writes the grid's snapshot as JSON.
func Save(w io.Writer, g *Grid) error {
	if err := json.NewEncoder(w).Encode(g.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode floor snapshot: %w", err)
	}
	return nil
}

// Decode reads and validates a snapshot.
func Decode(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// FloorSource rebuilds a floor from its dimensions and seed, without
// population. *Generator satisfies it; callers that also place the player and
// exit supply their own.
type FloorSource interface {
	Regenerate(ctx context.Context, width, height int, seed int64) (*Grid, error)
	// Layout returns the generation settings the source carves with.
	Layout() string
}

// Load decodes a snapshot, regenerates its floor and restores fog of war.
// Any error means the save cannot be used and the caller should start fresh.
func Load(ctx context.Context, r io.Reader, src FloorSource) (*Grid, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "floor.load")
	defer span.End()

	s, err := Decode(r)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.Layout != "" && s.Layout != src.Layout() {
		err := fmt.Errorf("%w: saved with %q, generating with %q", ErrLayoutMismatch, s.Layout, src.Layout())
		span.RecordError(err)
		return nil, err
	}

	g, err := src.Regenerate(ctx, s.Width, s.Height, s.Seed)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to regenerate floor %d: %w", s.Seed, err)
	}
	if err := s.Apply(g); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("floor.seed", s.Seed),
		attribute.Int("floor.explored", g.ExploredCount()),
	)
	logger.Component("world").WithFields(logrus.Fields{
		"seed":     s.Seed,
		"explored": g.ExploredCount(),
	}).Debug("Floor restored")

	return g, nil
}
