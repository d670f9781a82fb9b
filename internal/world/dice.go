package world

import "math/rand"

// spawnSalt separates the spawn stream from the layout stream of the same seed.
const spawnSalt int64 = 0x5DEECE66D

// Dice is a seeded random source. It remembers its seed and how many values it
// has produced, so a floor can be rebuilt by replaying the same stream.
type Dice struct {
	seed  int64
	draws int
	rng   *rand.Rand
}

// NewDice creates a dice stream for a seed.
func NewDice(seed int64) *Dice {
	return &Dice{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the stream started from.
func (d *Dice) Seed() int64 {
	return d.seed
}

// Draws returns the number of values produced so far.
func (d *Dice) Draws() int {
	return d.draws
}

// Roll returns a uniform integer in [low, high]. Reversed bounds are swapped.
func (d *Dice) Roll(low, high int) int {
	if low > high {
		low, high = high, low
	}
	d.draws++
	return low + d.rng.Intn(high-low+1)
}

// Percent rolls 1..100.
func (d *Dice) Percent() int {
	return d.Roll(1, 100)
}

// Coin returns true half of the time.
func (d *Dice) Coin() bool {
	return d.Roll(0, 1) == 1
}
