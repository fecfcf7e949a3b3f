package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/app/screens"
	"github.com/rook-computer/diceroller/internal/buttons"
	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/render"
	"github.com/rook-computer/diceroller/internal/session"
	"github.com/rook-computer/diceroller/internal/state"
	"github.com/rook-computer/diceroller/internal/web"
)

// Console is the tty mode switcher; *system.Console in production.
type Console interface {
	EnterGraphics() error
	Restore() error
}

type App struct {
	Session *session.Controller
	Store   *state.Store
	Render  render.Renderer
	Web     web.Server
	Buttons buttons.Buttons
	Console Console
	Logger  *zap.Logger

	currentScreen render.Screen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(ctrl *session.Controller, store *state.Store, renderer render.Renderer, webServer web.Server, buttonDriver buttons.Buttons) *App {
	return &App{
		Session: ctrl,
		Store:   store,
		Render:  renderer,
		Web:     webServer,
		Buttons: buttonDriver,
		Logger:  zap.NewNop(),
		exitCh:  make(chan error, 1),
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs the app until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.Session == nil || app.Store == nil {
		return errors.New("app needs a session and a store")
	}
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = zap.NewNop()
	}
	if app.Render == nil {
		app.Render = &render.NoopRenderer{}
	}
	if app.Buttons == nil {
		app.Buttons = buttons.NewNoopButtons()
	}
	if app.Web == nil {
		app.Web = &web.NoopServer{}
	}

	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Error("renderer start failed", zap.Error(err))
		return err
	}
	defer app.Render.Stop()

	if app.Console != nil {
		// Best-effort; errors are logged by the console itself.
		_ = app.Console.EnterGraphics()
		defer func() { _ = app.Console.Restore() }()
	}

	if err := app.setScreen(ctx, screens.NewRollScreen(app.Session.Presets())); err != nil {
		return err
	}
	app.Render.RedrawWithState(app.Store.Snapshot())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	if err := app.Web.Start(loopCtx); err != nil {
		app.Logger.Error("web server start failed", zap.Error(err))
		return err
	}
	defer app.Web.Stop()

	if err := app.Buttons.Start(loopCtx); err != nil {
		app.Logger.Error("input start failed", zap.Error(err))
		return err
	}
	defer app.Buttons.Stop()
	defer app.Session.Stop()

	app.Logger.Info("dice roller ready", zap.Stringer("spec", app.Session.Config()))
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			// Rejected input is shown on screen; it never stops the app.
			_ = app.HandleEvent(loopCtx, ev)
		}
	}
}

// HandleEvent applies one input action to the session. Validation errors are
// written to the status message and returned.
func (app *App) HandleEvent(ctx context.Context, ev buttons.Event) error {
	spec := app.Session.Config()
	var err error
	switch ev.Action {
	case buttons.Roll:
		_, err = app.Session.Roll(ctx)
	case buttons.QuickRoll:
		presets := app.Session.Presets()
		if ev.Preset < 0 || ev.Preset >= len(presets) {
			err = fmt.Errorf("%w: #%d", session.ErrUnknownPreset, ev.Preset+1)
			break
		}
		_, err = app.Session.QuickRoll(ctx, presets[ev.Preset].Name)
	case buttons.ClearHistory:
		app.Session.ClearHistory()
	case buttons.CountUp:
		err = app.Session.Configure(spec.Count+1, spec.Sides)
	case buttons.CountDown:
		err = app.Session.Configure(spec.Count-1, spec.Sides)
	case buttons.SidesNext:
		err = app.Session.Configure(spec.Count, dice.NextSides(spec.Sides))
	case buttons.SidesPrev:
		err = app.Session.Configure(spec.Count, dice.PrevSides(spec.Sides))
	case buttons.Exit:
		app.Logger.Info("exit requested")
		app.Exit(nil)
	default:
		err = fmt.Errorf("unknown action %q", ev.Action)
	}

	if err != nil {
		app.Logger.Debug("input rejected", zap.String("action", string(ev.Action)), zap.Error(err))
		app.Store.SetMessage(err.Error())
		return err
	}
	if ev.Action != buttons.Exit {
		app.Store.SetMessage("")
	}
	return nil
}

func (app *App) setScreen(ctx context.Context, screen render.Screen) error {
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	app.currentScreen = screen
	app.Render.SetScreen(screen)
	return screen.Start(ctx)
}
