package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/deepfloor/internal/entity"
	"github.com/samdwyer/deepfloor/internal/level"
	"github.com/samdwyer/deepfloor/internal/world"
)

// ExitRune marks the stairs down.
const ExitRune = '>'

// Renderer handles drawing the floor to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the current floor, what stands on it and a status line.
// Unexplored tiles stay blank, explored ones are dimmed and tiles in view are
// drawn bright. Monsters and items only show while in view.
func (r *Renderer) Render(c *level.Coordinator, msg string) {
	r.screen.Clear()

	g := c.Grid()
	if g == nil {
		r.RenderMessage(msg, 0)
		r.screen.Show()
		return
	}
	visible := c.Visible()

	g.Each(func(p world.Position, t world.Tile) {
		if !t.Explored {
			return
		}
		r.screen.SetContent(p.X, p.Y, t.Type.Rune(), tileStyle(t.Type, visible.Has(p)))
	})

	if exit, ok := g.ExitPosition(); ok && g.IsExplored(exit) {
		style := tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
		if !visible.Has(exit) {
			style = style.Dim(true)
		}
		r.screen.SetContent(exit.X, exit.Y, ExitRune, style)
	}

	if pop := c.Population(); pop != nil {
		r.renderActors(pop.Items(), visible)
		r.renderActors(pop.Monsters(), visible)
	}

	// Draw party on top
	party := c.Party()
	partyStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(party.Pos.X, party.Pos.Y, party.Symbol, partyStyle)

	status := fmt.Sprintf("Depth %d  Seed %d", c.Depth(), g.Seed())
	if room := c.PartyRoom(); room >= 0 {
		status += fmt.Sprintf("  Room %d", room)
	} else {
		status += "  Corridor"
	}
	if msg != "" {
		status += "  " + msg
	}
	r.RenderMessage(status, g.Height)

	r.screen.Show()
}

func (r *Renderer) renderActors(actors []*entity.Actor, visible mapset.Set[world.Position]) {
	for _, a := range actors {
		if !visible.Has(a.Pos) {
			continue
		}
		style := tcell.StyleDefault.Foreground(a.Color)
		r.screen.SetContent(a.Pos.X, a.Pos.Y, a.Symbol, style)
	}
}

// tileStyle returns the style for a tile type, dimmed when out of view.
func tileStyle(t world.TileType, lit bool) tcell.Style {
	var style tcell.Style
	switch t {
	case world.TileWall:
		style = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	case world.TileFloor, world.TileCorridor:
		style = tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileWater:
		style = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case world.TileDoor:
		style = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	default:
		style = tcell.StyleDefault
	}
	if !lit {
		style = style.Foreground(tcell.ColorDarkGray)
	}
	return style
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
