// Package game provides the main game loop and session state.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode: one actor intent per tick.
	StateExplore State = iota
	// StateGenerating is shown while a descent waits on floor generation.
	StateGenerating
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateGenerating:
		return "generating"
	default:
		return "unknown"
	}
}
