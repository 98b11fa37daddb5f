package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/prismrogue/internal/entity"
	"github.com/samdwyer/prismrogue/internal/gamedata"
	"github.com/samdwyer/prismrogue/internal/telemetry"
	"github.com/samdwyer/prismrogue/internal/traverse"
	"github.com/samdwyer/prismrogue/internal/ui"
	"github.com/samdwyer/prismrogue/internal/vision"
	"github.com/samdwyer/prismrogue/internal/world"
)

const logMaxEntries = 8

// Game holds the entire game state for one run.
type Game struct {
	runID    uuid.UUID
	screen   *ui.Screen
	renderer *ui.Renderer
	dungeon  *world.Dungeon
	engine   *traverse.Engine
	tracker  *vision.Tracker
	actor    *entity.Actor
	defs     []gamedata.WorldDef
	styles   [world.WorldCount]world.LayerStyle
	state    State
	running  bool
	turn     int
	messages []string // newest first
	visible  map[world.Point]struct{}

	sightOverride int
}

// New creates a new game instance for the given config.
func New(cfg Config) (*Game, error) {
	defs, err := gamedata.LoadWorlds()
	if err != nil {
		return nil, fmt.Errorf("loading world data: %w", err)
	}
	styles, err := gamedata.Styles(defs)
	if err != nil {
		return nil, fmt.Errorf("building layer styles: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = world.DefaultWidth
	}
	if height <= 0 {
		height = world.DefaultHeight
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	dungeon := world.NewDungeon(width, height, seed)
	dungeon.ApplyStyles(styles)

	g := &Game{
		runID:    uuid.New(),
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		dungeon:  dungeon,
		engine:   traverse.NewEngine(dungeon),
		tracker:  vision.NewTracker(),
		defs:     defs,
		styles:   styles,
		state:    StateExplore,
		running:  true,
	}
	if cfg.SightRadius > 0 {
		g.sightOverride = cfg.SightRadius
	}
	return g, nil
}

// Run executes the main game loop: one actor intent per tick, then
// visibility, then render.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	entry, err := g.dungeon.GetOrGenerate(ctx, 0)
	if err != nil {
		initSpan.End()
		g.screen.Close()
		return fmt.Errorf("generating entry floor: %w", err)
	}

	spawn := entry.Substrate.Spawn
	g.actor = entity.NewActor(spawn.X, spawn.Y, 0, world.Red)
	if g.sightOverride > 0 {
		g.actor.SightRadius = g.sightOverride
	}
	g.dungeon.RecordDepth(0)

	for _, def := range g.defs {
		g.pushLog(fmt.Sprintf("%s focus: %s", def.Name, def.Note))
	}

	initSpan.SetAttributes(
		attribute.String("run.id", g.runID.String()),
		attribute.Int64("run.seed", g.dungeon.Seed()),
		attribute.Int("dungeon.rooms", len(entry.Substrate.Rooms)),
		attribute.Int("actor.start_x", spawn.X),
		attribute.Int("actor.start_y", spawn.Y),
	)
	initSpan.End()

	g.updateVisibility()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// DeepestFloorReached reports the run's depth for the stats collaborator.
func (g *Game) DeepestFloorReached() world.FloorID {
	return g.dungeon.DeepestFloor()
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent turns keyboard input into one traversal intent.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return

	case tcell.KeyUp:
		g.resolveStep(0, -1)
		return
	case tcell.KeyDown:
		g.resolveStep(0, 1)
		return
	case tcell.KeyLeft:
		g.resolveStep(-1, 0)
		return
	case tcell.KeyRight:
		g.resolveStep(1, 0)
		return
	}

	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 'q', 'Q':
		g.running = false
	case 'h':
		g.resolveStep(-1, 0)
	case 'l':
		g.resolveStep(1, 0)
	case 'k':
		g.resolveStep(0, -1)
	case 'j':
		g.resolveStep(0, 1)
	case 'y':
		g.resolveStep(-1, -1)
	case 'u':
		g.resolveStep(1, -1)
	case 'b':
		g.resolveStep(-1, 1)
	case 'n':
		g.resolveStep(1, 1)
	case '>':
		g.resolveStair(ctx, traverse.Descend)
	case '<':
		g.resolveStair(ctx, traverse.Ascend)
	case 'p':
		g.resolvePortal()
	}
}

func (g *Game) resolveStep(dx, dy int) {
	result, err := g.engine.Step(g.actor, dx, dy)
	g.finishTurn(result, err)
}

func (g *Game) resolveStair(ctx context.Context, dir traverse.StairDirection) {
	g.state = StateGenerating
	result, err := g.engine.UseStair(ctx, g.actor, dir)
	g.state = StateExplore
	g.finishTurn(result, err)
}

func (g *Game) resolvePortal() {
	result, err := g.engine.UsePortal(g.actor)
	g.finishTurn(result, err)
}

// finishTurn applies the strict per-tick ordering after an intent:
// log the outcome, advance actor turn state, then recompute visibility
// for the now-active layer.
func (g *Game) finishTurn(result traverse.Result, err error) {
	if err != nil {
		// Generation failures and caller bugs both end the run; neither
		// may silently produce an invalid floor.
		g.pushLog(fmt.Sprintf("Fatal: %v", err))
		g.running = false
		return
	}

	if result.Message != "" {
		g.pushLog(result.Message)
	}
	if result.TurnCost > 0 {
		g.turn += result.TurnCost
		g.actor.EndTurn()
	}
	g.updateVisibility()
}

// updateVisibility recomputes line of sight for the actor's active
// (floor, world) pair only and folds it into the persistent seen set.
func (g *Game) updateVisibility() {
	wf, ok := g.dungeon.Floor(g.actor.Floor)
	if !ok {
		return
	}
	layer := wf.Layer(g.actor.World)
	visible, newly := g.tracker.Update(layer, g.actor.Floor, g.actor.Position(), g.actor.SightRadius)
	g.visible = visible
	if newly > 0 && g.turn > 0 {
		g.pushLog(fmt.Sprintf("Glimpsed %d new tiles in %s", newly, g.actor.World))
	}
}

func (g *Game) render() {
	wf, ok := g.dungeon.Floor(g.actor.Floor)
	if !ok {
		return
	}
	layer := wf.Layer(g.actor.World)
	g.renderer.Render(ui.Frame{
		Layer:      layer,
		Actor:      g.actor,
		Visible:    g.visible,
		Seen:       g.tracker.Seen(g.actor.Floor, g.actor.World),
		WorldColor: g.styles[g.actor.World.Index()].FloorColor,
		Turn:       g.turn,
		Messages:   g.messages,
		LogLines:   logMaxEntries,
	})
}

// pushLog prepends an entry, keeping the newest logMaxEntries.
func (g *Game) pushLog(entry string) {
	g.messages = append([]string{entry}, g.messages...)
	if len(g.messages) > logMaxEntries {
		g.messages = g.messages[:logMaxEntries]
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
