package state

import (
	"slices"
	"sync"

	"github.com/rook-computer/diceroller/internal/dice"
)

type Phase int

const (
	IDLE Phase = iota
	ANIMATING
)

func (p Phase) String() string {
	switch p {
	case ANIMATING:
		return "animating"
	default:
		return "idle"
	}
}

type State struct {
	Phase   Phase
	Spec    dice.Spec
	Faces   []int // values currently shown; nil before the first roll
	Total   int   // total of the last final roll
	Final   bool  // Faces hold an authoritative roll
	History []string
	Message string // last validation error, cleared on the next valid action
}

type Store struct {
	mu      sync.RWMutex
	state   State
	version uint64
}

func NewStore(spec dice.Spec) *Store {
	return &Store{state: State{Phase: IDLE, Spec: spec}}
}

// Snapshot returns a copy that is safe to keep after the store changes.
func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	snap := store.state
	snap.Faces = slices.Clone(store.state.Faces)
	snap.History = slices.Clone(store.state.History)
	return snap
}

// Version increases on every change. Renderers compare it to skip redraws.
func (store *Store) Version() uint64 {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.version
}

func (store *Store) SetMessage(message string) {
	store.mu.Lock()
	store.state.Message = message
	store.version++
	store.mu.Unlock()
}

// OnConfigChanged and the other On* methods let the store act as a
// session.Listener.
func (store *Store) OnConfigChanged(spec dice.Spec) {
	store.mu.Lock()
	store.state.Spec = spec
	store.state.Message = ""
	store.version++
	store.mu.Unlock()
}

func (store *Store) OnFrame(spec dice.Spec, values []int) {
	store.mu.Lock()
	store.state.Phase = ANIMATING
	store.state.Spec = spec
	store.state.Faces = slices.Clone(values)
	store.state.Final = false
	store.version++
	store.mu.Unlock()
}

func (store *Store) OnFinalResult(result dice.Result) {
	store.mu.Lock()
	store.state.Phase = IDLE
	store.state.Spec = result.Spec
	store.state.Faces = slices.Clone(result.Values)
	store.state.Total = result.Total()
	store.state.Final = true
	store.version++
	store.mu.Unlock()
}

func (store *Store) OnHistoryChanged(lines []string) {
	store.mu.Lock()
	store.state.History = slices.Clone(lines)
	store.version++
	store.mu.Unlock()
}
