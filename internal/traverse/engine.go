// Package traverse resolves movement intents against the dungeon:
// steps within a layer, stairs between floors, portals between worlds.
// The engine enforces the system's defining rule — stairs mutate the
// floor only, portals mutate the world only; no action changes both.
package traverse

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/prismrogue/internal/entity"
	"github.com/samdwyer/prismrogue/internal/world"
)

// Caller-bug conditions. These are returned as errors before any state
// mutation; a correct caller never sees them.
var (
	// ErrMalformedStep means a step delta exceeded one tile per axis.
	ErrMalformedStep = errors.New("malformed step delta")

	// ErrOutOfBounds means a step target fell outside the floor's
	// dimensions. Layers are ringed by wall, so this indicates a
	// caller bug rather than a runtime condition.
	ErrOutOfBounds = errors.New("step target out of bounds")
)

// Reason classifies why an intent failed. Failures are normal,
// recoverable outcomes; the turn is still consumed.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonBlocked
	ReasonNotAStair
	ReasonNoFloorAbove
	ReasonNotAPortal
	ReasonCooldown
	ReasonMissingKey
	ReasonNoEnergy
)

// Result reports how an intent resolved. Message is meant for the
// message-log collaborator verbatim.
type Result struct {
	OK       bool
	TurnCost int
	Reason   Reason
	Message  string
}

// StairDirection selects ascend or descend for UseStair.
type StairDirection int

const (
	Descend StairDirection = iota
	Ascend
)

// Engine resolves intents for actors against the dungeon store. It may
// trigger generation of the next floor on first descent.
type Engine struct {
	dungeon *world.Dungeon
}

// NewEngine creates a traversal engine over the given dungeon.
func NewEngine(d *world.Dungeon) *Engine {
	return &Engine{dungeon: d}
}

// Step moves the actor by (dx, dy) on its current layer. A blocked
// target still consumes the turn (the bump rule). Deltas beyond one
// tile per axis are rejected as caller bugs before any mutation.
func (e *Engine) Step(a *entity.Actor, dx, dy int) (Result, error) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return Result{}, fmt.Errorf("%w: (%d,%d)", ErrMalformedStep, dx, dy)
	}

	layer, err := e.activeLayer(a)
	if err != nil {
		return Result{}, err
	}

	tx, ty := a.X+dx, a.Y+dy
	if !layer.InBounds(tx, ty) {
		return Result{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, tx, ty)
	}

	if layer.TileAt(tx, ty).BlocksMove {
		return Result{
			TurnCost: 1,
			Reason:   ReasonBlocked,
			Message:  fmt.Sprintf("Blocked at %d,%d", tx, ty),
		}, nil
	}

	a.X, a.Y = tx, ty
	return Result{
		OK:       true,
		TurnCost: 1,
		Message:  fmt.Sprintf("Stepped to %d,%d in %s", tx, ty, a.World),
	}, nil
}

// UseStair moves the actor between floors. Descending past the deepest
// generated floor triggers generation; the actor lands on the new
// floor's up-stair. The actor's world never changes here.
func (e *Engine) UseStair(ctx context.Context, a *entity.Actor, dir StairDirection) (Result, error) {
	layer, err := e.activeLayer(a)
	if err != nil {
		return Result{}, err
	}
	tile := layer.TileAt(a.X, a.Y)

	switch dir {
	case Descend:
		if tile.Kind != world.KindStairDown {
			return Result{TurnCost: 1, Reason: ReasonNotAStair, Message: "There is no way down here."}, nil
		}
		next, err := e.dungeon.GetOrGenerate(ctx, a.Floor+1)
		if err != nil {
			return Result{}, fmt.Errorf("descending from floor %d: %w", a.Floor, err)
		}
		up, ok := next.UpStair()
		if !ok {
			return Result{}, fmt.Errorf("floor %d has no up-stair", next.ID)
		}
		a.Floor = next.ID
		a.X, a.Y = up.X, up.Y
		e.dungeon.RecordDepth(a.Floor)
		return Result{
			OK:       true,
			TurnCost: 1,
			Message:  fmt.Sprintf("You descend to floor %d.", a.Floor),
		}, nil

	case Ascend:
		if tile.Kind != world.KindStairUp {
			return Result{TurnCost: 1, Reason: ReasonNotAStair, Message: "There is no way up here."}, nil
		}
		prev, ok := e.dungeon.Floor(a.Floor - 1)
		if !ok {
			return Result{TurnCost: 1, Reason: ReasonNoFloorAbove, Message: "The stairs lead nowhere."}, nil
		}
		down := prev.DownStair()
		a.Floor = prev.ID
		a.X, a.Y = down.X, down.Y
		return Result{
			OK:       true,
			TurnCost: 1,
			Message:  fmt.Sprintf("You climb back to floor %d.", a.Floor),
		}, nil

	default:
		return Result{}, fmt.Errorf("unknown stair direction %d", dir)
	}
}

// UsePortal crosses to the paired world at the actor's coordinate. The
// actor must stand on a portal tile, satisfy its attunement mask, have
// the energy, and the portal must be off cooldown. The actor's floor
// and coordinate never change here.
func (e *Engine) UsePortal(a *entity.Actor) (Result, error) {
	layer, err := e.activeLayer(a)
	if err != nil {
		return Result{}, err
	}

	pos := a.Position()
	marker, ok := layer.PortalAt(pos)
	if !ok {
		return Result{TurnCost: 1, Reason: ReasonNotAPortal, Message: "There is no portal here."}, nil
	}
	if remaining := a.CooldownRemaining(a.Floor, pos); remaining > 0 {
		return Result{
			TurnCost: 1,
			Reason:   ReasonCooldown,
			Message:  fmt.Sprintf("The portal is dormant for %d more turns.", remaining),
		}, nil
	}
	if !a.HasKeys(marker.KeyMask) {
		return Result{
			TurnCost: 1,
			Reason:   ReasonMissingKey,
			Message:  fmt.Sprintf("You lack the attunement for %s.", marker.Dest),
		}, nil
	}
	if a.Energy < marker.Cost {
		return Result{
			TurnCost: 1,
			Reason:   ReasonNoEnergy,
			Message:  "You are too drained to cross.",
		}, nil
	}

	a.World = marker.Dest
	a.Energy -= marker.Cost
	a.StartCooldown(a.Floor, pos, marker.Cooldown)
	return Result{
		OK:       true,
		TurnCost: 1,
		Message:  fmt.Sprintf("You shift attunement to %s.", a.World),
	}, nil
}

// activeLayer returns the actor's current layer. The floor must already
// exist; only UseStair generates floors.
func (e *Engine) activeLayer(a *entity.Actor) (*world.MapLayer, error) {
	wf, ok := e.dungeon.Floor(a.Floor)
	if !ok {
		return nil, fmt.Errorf("actor on ungenerated floor %d", a.Floor)
	}
	return wf.Layer(a.World), nil
}
