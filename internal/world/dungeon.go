package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepfloor/internal/logger"
	"github.com/samdwyer/deepfloor/internal/telemetry"
)

const (
	// Default floor dimensions
	DefaultWidth  = 119
	DefaultHeight = 30
)

// ErrInvalidDimensions is returned when a floor is too small to hold a room.
var ErrInvalidDimensions = errors.New("world: invalid floor dimensions")

const (
	// minDimension is the smallest side that leaves room for a 1x1 room behind walls.
	minDimension = 3
	// MaxDimension is the largest side a floor may have.
	MaxDimension = 4096
)

// Config holds the generation knobs. Zero fields take their defaults.
type Config struct {
	MinLeafSize int     // Minimum BSP leaf side
	MaxLeafSize int     // Soft maximum; larger leaves keep splitting past SplitDepth
	SplitRatio  float64 // Aspect ratio that forces the split axis
	SplitDepth  int     // Recursion depth before leaves may stop splitting
	MinRoomSize int     // Minimum room side, clamped to the leaf interior
	WaterChance int     // Percent chance per room tile of becoming water
	Corridors   CorridorStyle
}

// DefaultConfig returns the stock generation parameters.
func DefaultConfig() Config {
	return Config{
		MinLeafSize: 8,
		MaxLeafSize: 20,
		SplitRatio:  1.5,
		SplitDepth:  4,
		MinRoomSize: 6,
		WaterChance: 10,
		Corridors:   CorridorL,
	}
}

// Layout describes the knobs that shape the tiles. Two configurations with the
// same layout carve the same floor from the same seed.
func (c Config) Layout() string {
	c = c.withDefaults()
	return fmt.Sprintf("leaf=%d-%d ratio=%g depth=%d room=%d water=%d corridors=%s",
		c.MinLeafSize, c.MaxLeafSize, c.SplitRatio, c.SplitDepth, c.MinRoomSize, c.WaterChance, c.Corridors)
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinLeafSize <= 0 {
		c.MinLeafSize = d.MinLeafSize
	}
	if c.MaxLeafSize <= 0 {
		c.MaxLeafSize = d.MaxLeafSize
	}
	if c.SplitRatio < 1 {
		c.SplitRatio = d.SplitRatio
	}
	if c.SplitDepth < 0 {
		c.SplitDepth = 0
	}
	if c.MinRoomSize <= 0 {
		c.MinRoomSize = d.MinRoomSize
	}
	if c.WaterChance < 0 {
		c.WaterChance = 0
	}
	return c
}

// Generator builds floor layouts: partition, rooms, then corridors. It places
// no actors; that is the spawner's job once the tiles are final.
type Generator struct {
	cfg Config
	log *logrus.Entry
}

// NewGenerator creates a generator with the given configuration.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg.withDefaults(),
		log: logger.Component("world"),
	}
}

// Config returns the effective generation parameters.
func (gen *Generator) Config() Config {
	return gen.cfg
}

// Generate creates the floor layout for a seed. The same arguments always
// produce the same tiles.
func (gen *Generator) Generate(ctx context.Context, width, height int, seed int64) (*Grid, error) {
	if width < minDimension || height < minDimension || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "floor.generate")
	defer span.End()

	startTime := time.Now()

	g := NewGrid(width, height, seed)
	g.layout = gen.cfg.Layout()
	leaves := Partition(Rect{X: 0, Y: 0, W: width, H: height}, gen.cfg, g.dice)

	// Carve every room before any corridor so corridors see all room tiles.
	for _, leaf := range leaves {
		if _, ok := g.CarveRoom(leaf, gen.cfg); !ok {
			gen.log.WithFields(logrus.Fields{
				"seed": seed,
				"leaf": leaf,
			}).Debug("Skipping leaf without interior")
		}
	}

	doors := 0
	for i := 1; i < len(g.rooms); i++ {
		path, placed := g.carveCorridor(g.rooms[i-1].Center(), g.rooms[i].Center(), gen.cfg.Corridors)
		g.corridors = append(g.corridors, Corridor{From: i - 1, To: i, Path: path, Doors: placed})
		doors += len(placed)
	}

	span.SetAttributes(
		attribute.Int("floor.width", width),
		attribute.Int("floor.height", height),
		attribute.Int64("floor.seed", seed),
		attribute.Int("floor.leaf_count", len(leaves)),
		attribute.Int("floor.room_count", len(g.rooms)),
		attribute.Int("floor.door_count", doors),
		attribute.Int64("floor.generation_ms", time.Since(startTime).Milliseconds()),
	)

	gen.log.WithFields(logrus.Fields{
		"seed":  seed,
		"rooms": len(g.rooms),
		"doors": doors,
	}).Debug("Floor generated")

	return g, nil
}

// Layout returns the generator's layout description.
func (gen *Generator) Layout() string {
	return gen.cfg.Layout()
}

// Regenerate rebuilds the tiles of a persisted floor.
func (gen *Generator) Regenerate(ctx context.Context, width, height int, seed int64) (*Grid, error) {
	return gen.Generate(ctx, width, height, seed)
}
