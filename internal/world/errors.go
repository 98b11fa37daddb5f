package world

import "errors"

// Generation failure taxonomy. All three are retryable at the floor
// pipeline level: the whole WorldFloor is discarded and rebuilt with a
// perturbed sub-seed, up to a bounded attempt count.
var (
	// ErrGenerationExhausted means the substrate generator could not
	// place the required rooms within its retry budget.
	ErrGenerationExhausted = errors.New("substrate generation exhausted")

	// ErrPlacementFailed means no valid coordinate could be found for a
	// required portal pair on this substrate.
	ErrPlacementFailed = errors.New("portal placement failed")

	// ErrValidationFailed means a materialized layer is disconnected or
	// a portal/stair tile is unreachable.
	ErrValidationFailed = errors.New("floor validation failed")
)
