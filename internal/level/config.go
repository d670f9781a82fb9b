package level

import (
	"os"
	"strconv"

	"github.com/samdwyer/deepfloor/internal/world"
)

// DefaultFOVRadius is how far the party sees.
const DefaultFOVRadius = 10

// Config holds floor and run configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible floor generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Width     int
	Height    int
	Depth     int // Starting dungeon depth, 1 is the shallowest
	FOVRadius int
	Populate  bool // Place monsters and items on fresh floors

	World world.Config
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Width:     world.DefaultWidth,
		Height:    world.DefaultHeight,
		Depth:     1,
		FOVRadius: DefaultFOVRadius,
		Populate:  true,
		World:     world.DefaultConfig(),
	}
}

// ConfigFromEnv starts from DefaultConfig and applies DEEPFLOOR_* environment
// variables. Unparseable values are ignored.
//
//	DEEPFLOOR_SEED, DEEPFLOOR_WIDTH, DEEPFLOOR_HEIGHT, DEEPFLOOR_DEPTH,
//	DEEPFLOOR_FOV_RADIUS, DEEPFLOOR_POPULATE, DEEPFLOOR_WATER_CHANCE,
//	DEEPFLOOR_MIN_ROOM, DEEPFLOOR_CORRIDORS (l or z)
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	envInt64("DEEPFLOOR_SEED", &cfg.Seed)
	envInt("DEEPFLOOR_WIDTH", &cfg.Width)
	envInt("DEEPFLOOR_HEIGHT", &cfg.Height)
	envInt("DEEPFLOOR_DEPTH", &cfg.Depth)
	envInt("DEEPFLOOR_FOV_RADIUS", &cfg.FOVRadius)
	envInt("DEEPFLOOR_WATER_CHANCE", &cfg.World.WaterChance)
	envInt("DEEPFLOOR_MIN_ROOM", &cfg.World.MinRoomSize)
	if v, ok := os.LookupEnv("DEEPFLOOR_POPULATE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Populate = b
		}
	}
	if v, ok := os.LookupEnv("DEEPFLOOR_CORRIDORS"); ok {
		cfg.World.Corridors = world.ParseCorridorStyle(v)
	}

	return cfg
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envInt64(key string, dst *int64) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
