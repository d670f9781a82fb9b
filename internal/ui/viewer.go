package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/deepfloor/internal/level"
	"github.com/samdwyer/deepfloor/internal/logger"
)

// Viewer walks the party around the current floor.
type Viewer struct {
	screen   *Screen
	renderer *Renderer
	level    *level.Coordinator
	message  string
	running  bool
	log      *logrus.Entry
}

// NewViewer opens the terminal screen for the coordinator's floor.
func NewViewer(c *level.Coordinator) (*Viewer, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return newViewer(screen, c), nil
}

func newViewer(screen *Screen, c *level.Coordinator) *Viewer {
	return &Viewer{
		screen:   screen,
		renderer: NewRenderer(screen),
		level:    c,
		running:  true,
		log:      logger.Component("ui"),
	}
}

// SetMessage shows a message on the status line until the next action.
func (v *Viewer) SetMessage(msg string) {
	v.message = msg
}

// Run executes the main loop until the player quits.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.screen.Close()

	for v.running {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		v.draw()

		// Handle input (blocking)
		v.handleInput(ctx)
	}
	return nil
}

func (v *Viewer) draw() {
	v.level.RefreshVisibility()
	v.renderer.Render(v.level, v.message)
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) {
	switch ev := v.screen.PollEvent().(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		// Screen finalized
		v.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	v.message = ""

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false

	case tcell.KeyUp:
		v.tryMove(0, -1)
	case tcell.KeyDown:
		v.tryMove(0, 1)
	case tcell.KeyLeft:
		v.tryMove(-1, 0)
	case tcell.KeyRight:
		v.tryMove(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case '>':
			v.descend(ctx)
		case 'r':
			v.level.Reveal()
			v.message = "The floor is revealed."
		}
	}
}

func (v *Viewer) tryMove(dx, dy int) {
	if !v.level.MoveParty(dx, dy) {
		v.message = "Blocked."
	}
}

func (v *Viewer) descend(ctx context.Context) {
	if !v.level.OnExit() {
		v.message = "There are no stairs here."
		return
	}
	if err := v.level.Descend(ctx); err != nil {
		v.log.WithError(err).Error("Descend failed")
		v.message = "The stairs are blocked."
		return
	}
	v.message = "You descend deeper."
}
