package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rook-computer/diceroller/internal/buttons"
	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/dice/dicetest"
	"github.com/rook-computer/diceroller/internal/render"
	"github.com/rook-computer/diceroller/internal/session"
	"github.com/rook-computer/diceroller/internal/state"
	"github.com/rook-computer/diceroller/internal/web"
)

func newTestApp(t *testing.T, src dice.Source) (*App, *buttons.ChanButtons) {
	t.Helper()
	store := state.NewStore(dice.Spec{Count: 2, Sides: 6})
	ctrl, err := session.New(session.Options{
		Source:     src,
		FrameCount: -1,
		FrameDelay: -1,
		Logger:     zaptest.NewLogger(t),
		Listener:   store,
	})
	require.NoError(t, err)
	btns := buttons.NewChanButtons(8)
	a := New(ctrl, store, &render.NoopRenderer{}, nil, btns)
	a.Logger = zaptest.NewLogger(t)
	return a, btns
}

type fakeConsole struct{ entered, restored int }

func (c *fakeConsole) EnterGraphics() error { c.entered++; return nil }
func (c *fakeConsole) Restore() error       { c.restored++; return errors.New("not a tty") }

func TestHandleEvent_Adjustments(t *testing.T) {
	a, _ := newTestApp(t, nil)
	ctx := context.Background()

	require.NoError(t, a.HandleEvent(ctx, buttons.Event{Action: buttons.CountUp}))
	assert.Equal(t, dice.Spec{Count: 3, Sides: 6}, a.Session.Config())
	require.NoError(t, a.HandleEvent(ctx, buttons.Event{Action: buttons.SidesNext}))
	assert.Equal(t, dice.Spec{Count: 3, Sides: 8}, a.Session.Config())
	require.NoError(t, a.HandleEvent(ctx, buttons.Event{Action: buttons.SidesPrev}))
	require.NoError(t, a.HandleEvent(ctx, buttons.Event{Action: buttons.SidesPrev}))
	assert.Equal(t, dice.Spec{Count: 3, Sides: 4}, a.Session.Config())
	require.NoError(t, a.HandleEvent(ctx, buttons.Event{Action: buttons.CountDown}))
	assert.Equal(t, dice.Spec{Count: 2, Sides: 4}, a.Session.Config())
}

func TestHandleEvent_RejectionShowsMessage(t *testing.T) {
	a, _ := newTestApp(t, nil)
	ctx := context.Background()
	require.NoError(t, a.Session.Configure(1, 6))

	err := a.HandleEvent(ctx, buttons.Event{Action: buttons.CountDown})
	require.ErrorIs(t, err, dice.ErrInvalidConfiguration)
	assert.Equal(t, dice.Spec{Count: 1, Sides: 6}, a.Session.Config(), "previous configuration stays")
	assert.NotEmpty(t, a.Store.Snapshot().Message)

	require.NoError(t, a.HandleEvent(ctx, buttons.Event{Action: buttons.CountUp}))
	assert.Empty(t, a.Store.Snapshot().Message)

	err = a.HandleEvent(ctx, buttons.Event{Action: buttons.QuickRoll, Preset: 42})
	assert.ErrorIs(t, err, session.ErrUnknownPreset)
}

func TestHandleEvent_QuickRollAndClear(t *testing.T) {
	a, _ := newTestApp(t, dicetest.NewSequence(7))
	ctx := context.Background()

	// Preset index 3 is 1d10.
	require.NoError(t, a.HandleEvent(ctx, buttons.Event{Action: buttons.QuickRoll, Preset: 3}))
	a.Session.Wait()
	assert.Equal(t, dice.Spec{Count: 1, Sides: 10}, a.Session.Config())
	snap := a.Store.Snapshot()
	assert.Equal(t, []string{"1d10 -> [7] = 7"}, snap.History)

	require.NoError(t, a.HandleEvent(ctx, buttons.Event{Action: buttons.ClearHistory}))
	assert.Empty(t, a.Store.Snapshot().History)
}

func TestStart_RollThenExit(t *testing.T) {
	a, btns := newTestApp(t, dicetest.NewSequence(3, 5))
	console := &fakeConsole{}
	a.Console = console

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- a.Start(ctx) }()

	require.True(t, btns.Send(buttons.Event{Action: buttons.Roll}))
	require.Eventually(t, func() bool { return a.Store.Snapshot().Final }, 2*time.Second, 5*time.Millisecond)
	require.True(t, btns.Send(buttons.Event{Action: buttons.Exit}))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("app did not exit")
	}
	snap := a.Store.Snapshot()
	assert.Equal(t, 8, snap.Total)
	assert.Equal(t, []string{"2d6 -> [3, 5] = 8"}, snap.History)
	assert.Equal(t, 1, console.entered)
	assert.Equal(t, 1, console.restored)
	assert.IsType(t, &web.NoopServer{}, a.Web, "no server configured")
}

func TestStart_ContextCancel(t *testing.T) {
	a, _ := newTestApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Start(ctx), context.Canceled)
}

func TestStart_RequiresSession(t *testing.T) {
	a := New(nil, nil, nil, nil, nil)
	assert.Error(t, a.Start(context.Background()))
}
