package traverse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/prismrogue/internal/entity"
	"github.com/samdwyer/prismrogue/internal/world"
)

func newTestRun(t *testing.T, seed int64) (*world.Dungeon, *world.WorldFloor, *Engine) {
	t.Helper()
	d := world.NewDungeon(world.DefaultWidth, world.DefaultHeight, seed)
	wf, err := d.GetOrGenerate(context.Background(), 0)
	require.NoError(t, err)
	return d, wf, NewEngine(d)
}

func actorAt(p world.Point, w world.World) *entity.Actor {
	return entity.NewActor(p.X, p.Y, 0, w)
}

// findPortalTo returns a coordinate on the given layer whose portal
// leads to dest.
func findPortalTo(t *testing.T, wf *world.WorldFloor, from, dest world.World) (world.Point, world.PortalMarker) {
	t.Helper()
	layer := wf.Layer(from)
	for _, p := range layer.Portals() {
		marker, _ := layer.PortalAt(p)
		if marker.Dest == dest {
			return p, marker
		}
	}
	t.Fatalf("no portal %s->%s on floor %d", from, dest, wf.ID)
	return world.Point{}, world.PortalMarker{}
}

func TestStepOntoWalkableTile(t *testing.T) {
	_, wf, eng := newTestRun(t, 42)

	// Spawn sits in a room, so at least one neighbor is open.
	a := actorAt(wf.Substrate.Spawn, world.Red)
	layer := wf.Layer(world.Red)

	moved := false
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if !layer.IsWalkable(a.X+d[0], a.Y+d[1]) {
			continue
		}
		res, err := eng.Step(a, d[0], d[1])
		require.NoError(t, err)
		assert.True(t, res.OK)
		assert.Equal(t, 1, res.TurnCost)
		moved = true
		break
	}
	require.True(t, moved, "spawn has no walkable neighbor")
}

func TestStepIntoWallConsumesTurn(t *testing.T) {
	_, wf, eng := newTestRun(t, 42)
	layer := wf.Layer(world.Red)

	// Find a walkable tile with a blocked neighbor.
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			if !layer.IsWalkable(x, y) || !layer.InBounds(x+1, y) || layer.IsWalkable(x+1, y) {
				continue
			}
			a := actorAt(world.Point{X: x, Y: y}, world.Red)
			res, err := eng.Step(a, 1, 0)
			require.NoError(t, err)

			assert.False(t, res.OK)
			assert.Equal(t, ReasonBlocked, res.Reason)
			assert.Equal(t, 1, res.TurnCost, "bump still costs a turn")
			assert.Equal(t, world.Point{X: x, Y: y}, a.Position(), "bump must not move the actor")
			return
		}
	}
	t.Fatal("no wall-adjacent walkable tile found")
}

func TestStepMalformedDeltaRejected(t *testing.T) {
	_, wf, eng := newTestRun(t, 42)
	a := actorAt(wf.Substrate.Spawn, world.Red)

	res, err := eng.Step(a, 2, 0)
	require.ErrorIs(t, err, ErrMalformedStep)
	assert.Zero(t, res.TurnCost, "malformed input must not consume a turn")
	assert.Equal(t, wf.Substrate.Spawn, a.Position(), "malformed input must not mutate state")
}

func TestDescendGeneratesNextFloor(t *testing.T) {
	// Scenario: seed=42, floor 0, actor on the down-stair issues a
	// descend. Floor becomes 1, world is unchanged, floor 1 is newly
	// present in the store.
	d, wf, eng := newTestRun(t, 42)
	require.Equal(t, 1, d.FloorCount())

	a := actorAt(wf.DownStair(), world.Green)
	res, err := eng.UseStair(context.Background(), a, Descend)
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, world.FloorID(1), a.Floor)
	assert.Equal(t, world.Green, a.World, "stairs must never change the world")
	assert.Equal(t, 2, d.FloorCount(), "descent generates the next floor")
	assert.Equal(t, world.FloorID(1), d.DeepestFloor())

	floor1, ok := d.Floor(1)
	require.True(t, ok)
	up, ok := floor1.UpStair()
	require.True(t, ok)
	assert.Equal(t, up, a.Position(), "actor lands on floor 1's up-stair")
}

func TestDescendOffStairRejected(t *testing.T) {
	d, wf, eng := newTestRun(t, 42)

	a := actorAt(wf.Substrate.Spawn, world.Red)
	if wf.Layer(world.Red).TileAt(a.X, a.Y).Kind == world.KindStairDown {
		t.Skip("spawn happens to sit on the down-stair")
	}

	res, err := eng.UseStair(context.Background(), a, Descend)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonNotAStair, res.Reason)
	assert.Equal(t, 1, res.TurnCost)
	assert.Equal(t, world.FloorID(0), a.Floor)
	assert.Equal(t, 1, d.FloorCount(), "failed descend must not generate floors")
}

func TestAscendReturnsToPriorDownStair(t *testing.T) {
	d, wf, eng := newTestRun(t, 42)

	a := actorAt(wf.DownStair(), world.Blue)
	_, err := eng.UseStair(context.Background(), a, Descend)
	require.NoError(t, err)

	res, err := eng.UseStair(context.Background(), a, Ascend)
	require.NoError(t, err)
	require.True(t, res.OK)

	assert.Equal(t, world.FloorID(0), a.Floor)
	assert.Equal(t, world.Blue, a.World)
	assert.Equal(t, wf.DownStair(), a.Position())
	assert.Equal(t, 2, d.FloorCount())
}

func TestAscendOnEntryFloor(t *testing.T) {
	_, wf, eng := newTestRun(t, 42)

	// Floor 0 has no up-stair tile, so the attempt fails as a normal
	// traversal outcome, not an error.
	a := actorAt(wf.Substrate.Spawn, world.Red)
	res, err := eng.UseStair(context.Background(), a, Ascend)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonNotAStair, res.Reason)
	assert.Equal(t, world.FloorID(0), a.Floor)
}

func TestPortalCrossesWorldOnly(t *testing.T) {
	_, wf, eng := newTestRun(t, 42)
	p, marker := findPortalTo(t, wf, world.Red, world.Orange)

	a := actorAt(p, world.Red)
	startEnergy := a.Energy

	res, err := eng.UsePortal(a)
	require.NoError(t, err)
	require.True(t, res.OK)

	assert.Equal(t, world.Orange, a.World)
	assert.Equal(t, world.FloorID(0), a.Floor, "portals must never change the floor")
	assert.Equal(t, p, a.Position(), "portals keep the coordinate")
	assert.Equal(t, startEnergy-marker.Cost, a.Energy)
}

func TestPortalCooldownBlocksReturn(t *testing.T) {
	_, wf, eng := newTestRun(t, 42)
	p, marker := findPortalTo(t, wf, world.Red, world.Orange)

	a := actorAt(p, world.Red)
	_, err := eng.UsePortal(a)
	require.NoError(t, err)
	require.Equal(t, world.Orange, a.World)

	// The twin shares the coordinate, so the pair cooldown applies.
	res, err := eng.UsePortal(a)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonCooldown, res.Reason)
	assert.Equal(t, world.Orange, a.World, "denied crossing must not move worlds")

	// Once the cooldown runs out, the return trip works.
	for i := 0; i < marker.Cooldown; i++ {
		a.EndTurn()
	}
	res, err = eng.UsePortal(a)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, world.Red, a.World)
}

func TestPortalKeyMaskDenied(t *testing.T) {
	// Scenario: an actor with an empty key mask attempts a portal
	// requiring attunement bit 0b001 — denied, position unchanged,
	// turn still consumed.
	_, wf, eng := newTestRun(t, 42)
	p, marker := findPortalTo(t, wf, world.Indigo, world.Violet)
	require.Equal(t, uint8(0b001), marker.KeyMask, "Violet portals require attunement")

	a := actorAt(p, world.Indigo)
	a.KeyMask = 0

	res, err := eng.UsePortal(a)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonMissingKey, res.Reason)
	assert.Equal(t, 1, res.TurnCost)
	assert.Equal(t, world.Indigo, a.World)
	assert.Equal(t, p, a.Position())

	// With the attunement bit, the same crossing succeeds.
	a.KeyMask = 0b001
	res, err = eng.UsePortal(a)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, world.Violet, a.World)
}

func TestPortalOffTileRejected(t *testing.T) {
	_, wf, eng := newTestRun(t, 42)

	a := actorAt(wf.Substrate.Spawn, world.Red)
	if _, ok := wf.Layer(world.Red).PortalAt(a.Position()); ok {
		t.Skip("spawn happens to sit on a portal")
	}

	res, err := eng.UsePortal(a)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonNotAPortal, res.Reason)
	assert.Equal(t, 1, res.TurnCost)
}

func TestPortalEnergyRequired(t *testing.T) {
	_, wf, eng := newTestRun(t, 42)
	p, _ := findPortalTo(t, wf, world.Red, world.Orange)

	a := actorAt(p, world.Red)
	a.Energy = 0

	res, err := eng.UsePortal(a)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonNoEnergy, res.Reason)
	assert.Equal(t, world.Red, a.World)
}
