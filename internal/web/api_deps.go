package web

import (
	"context"
	"image"

	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/history"
	"github.com/rook-computer/diceroller/internal/state"
)

// Session is the part of the roll session controller the API drives.
type Session interface {
	Config() dice.Spec
	Configure(count, sides int) error
	Roll(ctx context.Context) (<-chan dice.Result, error)
	QuickRoll(ctx context.Context, name string) (<-chan dice.Result, error)
	History() []history.Entry
	ClearHistory()
	Presets() []dice.Preset
	Animating() bool
}

// StateSource provides the display state, typically a *state.Store.
type StateSource interface {
	Snapshot() state.State
}

// APIV1Deps bundles the collaborators of the /api/v1 routes.
type APIV1Deps struct {
	Session Session
	// State is optional; without it /state is derived from Session.
	State StateSource
	// Screenshot renders a snapshot for GET /screen.png. Optional.
	Screenshot func(state.State) (image.Image, error)
	Logger     *zap.Logger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.State == nil && d.Session != nil {
		d.State = sessionState{d.Session}
	}
	return d
}

// sessionState builds a display state from the controller alone.
type sessionState struct{ s Session }

func (s sessionState) Snapshot() state.State {
	st := state.State{Spec: s.s.Config()}
	if s.s.Animating() {
		st.Phase = state.ANIMATING
	}
	entries := s.s.History()
	for _, e := range entries {
		st.History = append(st.History, e.Text)
	}
	if n := len(entries); n > 0 && st.Phase == state.IDLE && entries[n-1].Result.Spec == st.Spec {
		last := entries[n-1].Result
		st.Faces = last.Values
		st.Total = last.Total()
		st.Final = true
	}
	return st
}
