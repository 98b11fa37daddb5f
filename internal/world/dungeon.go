package world

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/prismrogue/internal/telemetry"
)

// maxFloorAttempts bounds how many perturbed sub-seeds the pipeline
// tries before a generation failure becomes fatal.
const maxFloorAttempts = 12

// Dungeon is the lazily-populated, append-only collection of generated
// floors for one run. Floor n+1 is generated on first descent past
// floor n; floors are never evicted. All floor sub-seeds derive from
// the single run seed, so a run seed reproduces the whole dungeon.
type Dungeon struct {
	mu      sync.Mutex
	runSeed int64
	width   int
	height  int
	styles  [WorldCount]LayerStyle
	floors  []*WorldFloor
	deepest FloorID
}

// NewDungeon creates an empty dungeon store for the given run seed.
// No floor exists until the first GetOrGenerate call.
func NewDungeon(width, height int, runSeed int64) *Dungeon {
	return &Dungeon{
		runSeed: runSeed,
		width:   width,
		height:  height,
		styles:  DefaultStyles(),
	}
}

// ApplyStyles replaces the per-world layer styles. Must be called
// before the first floor is generated.
func (d *Dungeon) ApplyStyles(styles [WorldCount]LayerStyle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.styles = styles
}

// Seed returns the run seed.
func (d *Dungeon) Seed() int64 {
	return d.runSeed
}

// FloorCount returns how many floors have been generated.
func (d *Dungeon) FloorCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.floors)
}

// GetOrGenerate returns the floor with the given id, generating it (and
// any missing shallower floors, so stair alignment chains hold) on first
// request. Idempotent and at-most-once: concurrent or re-entrant calls
// for the same ungenerated floor run the pipeline a single time, and a
// partially built floor is never observable.
func (d *Dungeon) GetOrGenerate(ctx context.Context, id FloorID) (*WorldFloor, error) {
	if id < 0 {
		return nil, fmt.Errorf("negative floor id %d", id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for FloorID(len(d.floors)) <= id {
		next := FloorID(len(d.floors))
		wf, err := d.generateFloor(ctx, next)
		if err != nil {
			return nil, err
		}
		d.floors = append(d.floors, wf)
	}
	return d.floors[id], nil
}

// Floor returns an already-generated floor, or false if it does not
// exist yet. Never triggers generation.
func (d *Dungeon) Floor(id FloorID) (*WorldFloor, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id < 0 || int(id) >= len(d.floors) {
		return nil, false
	}
	return d.floors[id], true
}

// RecordDepth notes that an actor has reached the given floor. Depth
// only moves downward; the run-stats collaborator reads it back through
// DeepestFloor.
func (d *Dungeon) RecordDepth(id FloorID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id > d.deepest {
		d.deepest = id
	}
}

// DeepestFloor returns the deepest floor an actor has reached this run.
func (d *Dungeon) DeepestFloor() FloorID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deepest
}

// generateFloor runs the pipeline for one floor with bounded retries,
// perturbing the sub-seed each attempt. Caller holds d.mu.
func (d *Dungeon) generateFloor(ctx context.Context, id FloorID) (*WorldFloor, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate_floor")
	defer span.End()

	startTime := time.Now()

	var alignUp *Point
	if id > 0 {
		down := d.floors[id-1].DownStair()
		alignUp = &down
	}

	attempt := 0
	wf, err := backoff.Retry(ctx, func() (*WorldFloor, error) {
		seed := floorSeed(d.runSeed, id, attempt)
		attempt++
		wf, err := buildWorldFloor(id, d.width, d.height, seed, alignUp, &d.styles)
		if err != nil && !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return wf, err
	}, backoff.WithBackOff(&backoff.ZeroBackOff{}), backoff.WithMaxTries(maxFloorAttempts))

	span.SetAttributes(
		attribute.Int("dungeon.floor", int(id)),
		attribute.Int("dungeon.attempts", attempt),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	if err != nil {
		return nil, fmt.Errorf("floor %d: %w", id, err)
	}
	span.SetAttributes(attribute.Int("dungeon.room_count", len(wf.Substrate.Rooms)))
	return wf, nil
}

// retryable reports whether a pipeline failure warrants another attempt
// with a perturbed sub-seed.
func retryable(err error) bool {
	return errors.Is(err, ErrGenerationExhausted) ||
		errors.Is(err, ErrPlacementFailed) ||
		errors.Is(err, ErrValidationFailed)
}
