// Package level coordinates one floor at a time: generation phases, the
// party's view of the floor, descent and save/load.
package level

// Phase is how far the current floor has progressed through generation.
// Phases only advance in order.
type Phase int

const (
	// PhaseEmpty means no floor exists yet.
	PhaseEmpty Phase = iota
	// PhaseCarved means rooms and corridors are final.
	PhaseCarved
	// PhaseSpawned means the start, exit and population are placed.
	PhaseSpawned
	// PhaseReady means visibility has been computed at least once.
	PhaseReady
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseCarved:
		return "carved"
	case PhaseSpawned:
		return "spawned"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}
