package level

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepfloor/internal/entity"
	"github.com/samdwyer/deepfloor/internal/logger"
	"github.com/samdwyer/deepfloor/internal/spawn"
	"github.com/samdwyer/deepfloor/internal/telemetry"
	"github.com/samdwyer/deepfloor/internal/world"
)

// ErrNoFloor is returned when an operation needs a floor and none exists yet.
var ErrNoFloor = errors.New("level: no floor generated")

// Coordinator owns the current floor. Other components borrow the grid for a
// single query; only the coordinator replaces it.
type Coordinator struct {
	cfg     Config
	gen     *world.Generator
	spawner *spawn.Spawner

	grid  *world.Grid
	pop   *spawn.Population
	party *entity.Party
	depth int
	phase Phase

	visible mapset.Set[world.Position]
	dirty   bool

	log *logrus.Entry
}

// New creates a coordinator. The spawner lives as long as the coordinator, so
// unique kinds stay unique across every floor of the run.
func New(cfg Config, spawner *spawn.Spawner) *Coordinator {
	return &Coordinator{
		cfg:     cfg,
		gen:     world.NewGenerator(cfg.World),
		spawner: spawner,
		depth:   max(1, cfg.Depth),
		party:   entity.NewParty(world.Position{}),
		visible: mapset.New[world.Position](),
		log:     logger.Component("level"),
	}
}

// Start generates the first floor from the configuration.
func (c *Coordinator) Start(ctx context.Context) error {
	_, err := c.Generate(ctx, c.cfg.Width, c.cfg.Height, c.freshSeed(), c.cfg.Populate)
	return err
}

// Generate builds a floor and makes it current: partition and carve, then
// spawn. Visibility is requested for the next refresh.
func (c *Coordinator) Generate(ctx context.Context, width, height int, seed int64, populate bool) (*world.Grid, error) {
	g, pop, err := c.build(ctx, width, height, seed, populate)
	if err != nil {
		return nil, err
	}
	c.install(g, pop)
	return g, nil
}

// Layout returns the generation settings of this coordinator's floors.
func (c *Coordinator) Layout() string {
	return c.gen.Layout()
}

// Regenerate rebuilds the tiles, player start and exit of a floor without
// population. It does not make the floor current.
func (c *Coordinator) Regenerate(ctx context.Context, width, height int, seed int64) (*world.Grid, error) {
	g, _, err := c.build(ctx, width, height, seed, false)
	return g, err
}

func (c *Coordinator) build(ctx context.Context, width, height int, seed int64, populate bool) (*world.Grid, *spawn.Population, error) {
	tracer := telemetry.Tracer("level")
	ctx, span := tracer.Start(ctx, "level.build")
	defer span.End()

	g, err := c.gen.Generate(ctx, width, height, seed)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("failed to generate floor: %w", err)
	}
	c.phase = PhaseCarved

	pop := c.spawner.Populate(ctx, g, c.depth, populate)
	c.phase = PhaseSpawned

	span.SetAttributes(
		attribute.Int("level.depth", c.depth),
		attribute.Int64("level.seed", seed),
		attribute.Bool("level.populate", populate),
	)
	return g, pop, nil
}

func (c *Coordinator) install(g *world.Grid, pop *spawn.Population) {
	if pop == nil {
		pop = spawn.NewPopulation(g.Seed(), c.depth)
	}
	g.SetOccupancy(pop.Roster)

	c.grid = g
	c.pop = pop
	c.phase = PhaseSpawned

	start, ok := g.PlayerStart()
	if !ok {
		c.log.WithField("seed", g.Seed()).Warn("Floor has no player start")
	}
	c.party.Pos = start

	c.visible = mapset.New[world.Position]()
	c.RequestVisibility()

	c.log.WithFields(logrus.Fields{
		"seed":  g.Seed(),
		"depth": c.depth,
		"rooms": len(g.Rooms()),
	}).Info("Floor ready")
}

// Descend discards the current floor and generates the next one down with a
// fresh seed.
func (c *Coordinator) Descend(ctx context.Context) error {
	if c.grid == nil {
		return ErrNoFloor
	}
	seed := int64(c.grid.SpawnDice().Roll(1, math.MaxInt32))
	c.depth++

	if _, err := c.Generate(ctx, c.grid.Width, c.grid.Height, seed, c.cfg.Populate); err != nil {
		c.depth--
		return err
	}
	return nil
}

// Save writes the current floor's snapshot.
func (c *Coordinator) Save(w io.Writer) error {
	if c.grid == nil {
		return ErrNoFloor
	}
	return world.Save(w, c.grid)
}

// Load restores a floor from a snapshot. If the snapshot cannot be used, a
// fresh floor is generated instead and the message for the player is returned
// alongside the load error.
func (c *Coordinator) Load(ctx context.Context, r io.Reader) (string, error) {
	g, err := world.Load(ctx, r, c)
	if err == nil {
		c.install(g, nil)
		return "", nil
	}

	c.log.WithError(err).Warn("Saved floor could not be restored, generating a fresh one")
	if _, genErr := c.Generate(ctx, c.cfg.Width, c.cfg.Height, c.freshSeed(), c.cfg.Populate); genErr != nil {
		return world.RestoreFailedMessage, errors.Join(err, genErr)
	}
	return world.RestoreFailedMessage, err
}

// RequestVisibility marks the party's view stale. The next RefreshVisibility
// recomputes it.
func (c *Coordinator) RequestVisibility() {
	c.dirty = true
}

// RefreshVisibility recomputes the party's view if it was requested since the
// last refresh. Returns the current view and whether it was recomputed.
func (c *Coordinator) RefreshVisibility() (mapset.Set[world.Position], bool) {
	if !c.dirty || c.grid == nil || c.phase < PhaseSpawned {
		return c.visible, false
	}
	c.visible = c.grid.ComputeVisibility(c.party.Pos, c.cfg.FOVRadius)
	c.dirty = false
	c.phase = PhaseReady
	return c.visible, true
}

// MoveParty steps the party if the destination is walkable and free of
// monsters. A successful move requests a visibility refresh.
func (c *Coordinator) MoveParty(dx, dy int) bool {
	if c.grid == nil {
		return false
	}
	next := c.party.Pos.Add(world.Position{X: dx, Y: dy})
	if c.grid.Occupied(next) {
		return false
	}
	if !c.party.Move(c.grid, dx, dy) {
		return false
	}
	c.RequestVisibility()
	return true
}

// PartyRoom returns the index of the room the party stands in, or -1 outside
// any room.
func (c *Coordinator) PartyRoom() int {
	if c.grid == nil {
		return -1
	}
	return c.grid.RoomIndexAt(c.party.Pos)
}

// OnExit reports whether the party stands on the exit.
func (c *Coordinator) OnExit() bool {
	if c.grid == nil {
		return false
	}
	exit, ok := c.grid.ExitPosition()
	return ok && exit == c.party.Pos
}

// Reveal maps the whole floor.
func (c *Coordinator) Reveal() {
	if c.grid != nil {
		c.grid.Reveal()
	}
}

// Grid returns the current floor.
func (c *Coordinator) Grid() *world.Grid {
	return c.grid
}

// Population returns what was placed on the current floor.
func (c *Coordinator) Population() *spawn.Population {
	return c.pop
}

// Party returns the player's party.
func (c *Coordinator) Party() *entity.Party {
	return c.party
}

// Depth returns the current dungeon depth.
func (c *Coordinator) Depth() int {
	return c.depth
}

// Phase returns the generation phase of the current floor.
func (c *Coordinator) Phase() Phase {
	return c.phase
}

// Visible returns the party's view as of the last refresh.
func (c *Coordinator) Visible() mapset.Set[world.Position] {
	return c.visible
}

func (c *Coordinator) freshSeed() int64 {
	if c.cfg.Seed != 0 {
		return c.cfg.Seed
	}
	return time.Now().UnixNano()
}
