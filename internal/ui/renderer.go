package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/prismrogue/internal/entity"
	"github.com/samdwyer/prismrogue/internal/gamedata"
	"github.com/samdwyer/prismrogue/internal/world"
)

const (
	mapOriginX = 0
	mapOriginY = 2

	// How far seen-but-out-of-sight tiles fade toward black.
	fogDim = 0.65
)

// Frame is everything the renderer needs for one tick: the active
// layer, the actor, the current and remembered visibility sets, and the
// session readouts for the HUD and log panel.
type Frame struct {
	Layer      *world.MapLayer
	Actor      *entity.Actor
	Visible    map[world.Point]struct{}
	Seen       map[world.Point]struct{}
	WorldColor tcell.Color
	Turn       int
	Messages   []string // newest first
	LogLines   int
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame: HUD, fogged map, actor, message log.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	r.drawHUD(f)
	r.drawLayer(f)

	// Actor on top, always within the current field of view.
	actorStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	r.screen.SetContent(mapOriginX+f.Actor.X, mapOriginY+f.Actor.Y, f.Actor.Glyph, actorStyle)

	r.drawLog(f)
	r.screen.Show()
}

func (r *Renderer) drawHUD(f Frame) {
	header := fmt.Sprintf("%s · Floor %d · Turn %d · Energy %d/%d",
		f.Layer.World, f.Actor.Floor, f.Turn, f.Actor.Energy, entity.MaxEnergy)
	style := tcell.StyleDefault.Foreground(f.WorldColor).Bold(true)
	for i, ch := range header {
		r.screen.SetContent(i, 0, ch, style)
	}
}

// drawLayer paints the active layer under fog of war: tiles in the
// current field of view draw at full color, remembered tiles draw
// dimmed, and everything else stays dark.
func (r *Renderer) drawLayer(f Frame) {
	for y := 0; y < f.Layer.Height; y++ {
		for x := 0; x < f.Layer.Width; x++ {
			p := world.Point{X: x, Y: y}
			_, inView := f.Visible[p]
			if !inView {
				if _, remembered := f.Seen[p]; !remembered {
					continue
				}
			}

			tile := f.Layer.TileAt(x, y)
			fg := tile.FG
			if !inView {
				fg = gamedata.Dim(fg, fogDim)
			}
			style := tcell.StyleDefault.Foreground(fg).Background(tile.BG)
			r.screen.SetContent(mapOriginX+x, mapOriginY+y, tile.Glyph, style)
		}
	}
}

// drawLog prints the newest messages under the map, newest first.
func (r *Renderer) drawLog(f Frame) {
	startY := mapOriginY + f.Layer.Height + 1
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, msg := range f.Messages {
		if i >= f.LogLines {
			break
		}
		for j, ch := range msg {
			r.screen.SetContent(j, startY+i, ch, style)
		}
	}
}
