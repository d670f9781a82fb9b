package ui

import (
	"bufio"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/samdwyer/deepfloor/internal/spawn"
	"github.com/samdwyer/deepfloor/internal/world"
)

// StartRune marks the player start in a dump.
const StartRune = '@'

var (
	dumpWall     = color.Style{color.FgGray}
	dumpFloor    = color.Style{color.FgWhite}
	dumpWater    = color.Style{color.FgBlue, color.OpBold}
	dumpDoor     = color.Style{color.FgYellow}
	dumpCorridor = color.Style{color.FgGray, color.OpBold}
	dumpMonster  = color.Style{color.FgRed, color.OpBold}
	dumpItem     = color.Style{color.FgGreen, color.OpBold}
	dumpMarker   = color.Style{color.FgMagenta, color.OpBold}
)

// IsTerminal reports whether f is attached to a terminal, so a dump to it can
// be colored.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Dump writes the whole floor as text, one row per line, ignoring fog of war.
// Actors are drawn over their tiles, then the exit, then the player start.
// pop may be nil.
func Dump(w io.Writer, g *world.Grid, pop *spawn.Population, colored bool) error {
	overlay := make(map[world.Position]rune)
	styles := make(map[world.Position]color.Style)

	if pop != nil {
		for _, a := range pop.Items() {
			overlay[a.Pos] = a.Symbol
			styles[a.Pos] = dumpItem
		}
		for _, a := range pop.Monsters() {
			overlay[a.Pos] = a.Symbol
			styles[a.Pos] = dumpMonster
		}
	}
	if exit, ok := g.ExitPosition(); ok {
		overlay[exit] = ExitRune
		styles[exit] = dumpMarker
	}
	if start, ok := g.PlayerStart(); ok {
		overlay[start] = StartRune
		styles[start] = dumpMarker
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := world.Position{X: x, Y: y}
			r, ok := overlay[p]
			style := styles[p]
			if !ok {
				t := g.TypeAt(p)
				r = t.Rune()
				style = dumpStyle(t)
			}
			if colored {
				bw.WriteString(style.Sprint(string(r)))
			} else {
				bw.WriteRune(r)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func dumpStyle(t world.TileType) color.Style {
	switch t {
	case world.TileFloor:
		return dumpFloor
	case world.TileWater:
		return dumpWater
	case world.TileDoor:
		return dumpDoor
	case world.TileCorridor:
		return dumpCorridor
	default:
		return dumpWall
	}
}
