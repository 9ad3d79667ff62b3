package ui

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeondice/internal/game"
	"github.com/samdwyer/dungeondice/internal/gamedata"
)

// noFocus is passed to the renderer when no cursor is live.
const noFocus game.Target = -1

// command is an engine action bound to a key.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdNext
	cmdPrev
	cmdFocus
	cmdToggle
	cmdConfirm
	cmdCancel
)

// commandFor maps a key press to a command.
func commandFor(key tcell.Key, r rune) command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyRight, tcell.KeyDown:
		return cmdNext
	case tcell.KeyLeft, tcell.KeyUp:
		return cmdPrev
	case tcell.KeyTab:
		return cmdFocus
	case tcell.KeyEnter:
		return cmdConfirm
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return cmdCancel
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return cmdQuit
		case 'l':
			return cmdNext
		case 'h':
			return cmdPrev
		case ' ', 'x':
			return cmdToggle
		case 'b':
			return cmdCancel
		}
	}
	return cmdNone
}

// App runs the input loop around an engine.
type App struct {
	screen   *Screen
	renderer *Renderer
	engine   *game.Engine
	logger   *slog.Logger
	focus    int
	running  bool
}

// NewApp binds an engine to a screen.
func NewApp(screen *Screen, faces *gamedata.FaceRegistry, engine *game.Engine, logger *slog.Logger) *App {
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen, faces),
		engine:   engine,
		logger:   logger,
		running:  true,
	}
}

// Run executes the main loop until the player quits, then closes the screen.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	for a.running {
		focus, live := a.focused()
		if !live {
			focus = noFocus
		}
		a.renderer.Render(a.engine, focus)
		a.handleInput(ctx)
	}

	a.logger.Info("run ended",
		"phase", a.engine.Phase().String(),
		"delve", a.engine.Delve(),
		"score", a.engine.Score(),
	)
	return nil
}

// handleInput processes a single input event.
func (a *App) handleInput(ctx context.Context) {
	switch ev := a.screen.PollEvent().(type) {
	case *tcell.EventKey:
		if !a.apply(ctx, commandFor(ev.Key(), ev.Rune())) {
			a.renderer.warn("Selection is full.")
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

// apply runs cmd against the engine. It returns false when a mark was
// refused at the selection limit.
func (a *App) apply(ctx context.Context, cmd command) bool {
	t, live := a.focused()
	switch cmd {
	case cmdQuit:
		a.running = false
	case cmdNext:
		if live {
			a.engine.AdvanceSelection(t)
		}
	case cmdPrev:
		if live {
			a.engine.RetreatSelection(t)
		}
	case cmdFocus:
		if n := len(a.engine.Targets()); n > 0 {
			a.focus = (a.focus + 1) % n
		}
	case cmdToggle:
		if live && a.engine.CanToggle(t) {
			return a.engine.ToggleSelect(t)
		}
	case cmdConfirm:
		from := a.engine.Phase()
		if to := a.engine.Confirm(ctx); to != from {
			a.focus = 0
		}
	case cmdCancel:
		if a.engine.CanCancel() {
			a.engine.Cancel(ctx)
			a.focus = 0
		}
	}
	return true
}

// focused returns the target arrow keys move, if any is live.
func (a *App) focused() (game.Target, bool) {
	targets := a.engine.Targets()
	if len(targets) == 0 {
		return 0, false
	}
	if a.focus >= len(targets) {
		a.focus = 0
	}
	return targets[a.focus], true
}
