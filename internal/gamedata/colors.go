package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseColor converts a table color to a tcell.Color. It accepts hex codes
// with or without the leading # ("#FF0000", "FF0000") and the color names
// tcell knows ("red", "olive").
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 6 && !strings.HasPrefix(s, "#") {
		if _, ok := tcell.ColorNames[s]; !ok {
			s = "#" + s
		}
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

func colorOr(s string, fallback tcell.Color) tcell.Color {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
