package session

import "github.com/rook-computer/diceroller/internal/dice"

// Listener receives the output of a roll session.
//
// Callbacks run on the animation goroutine, one at a time and in order.
// They must not call Roll, QuickRoll or ClearHistory synchronously.
type Listener interface {
	OnConfigChanged(spec dice.Spec)
	OnFrame(spec dice.Spec, values []int)
	OnFinalResult(result dice.Result)
	OnHistoryChanged(lines []string)
}

// NopListener ignores every callback.
type NopListener struct{}

func (NopListener) OnConfigChanged(dice.Spec) {}
func (NopListener) OnFrame(dice.Spec, []int)  {}
func (NopListener) OnFinalResult(dice.Result) {}
func (NopListener) OnHistoryChanged([]string) {}

// Listeners fans callbacks out to several listeners in order.
type Listeners []Listener

func (ls Listeners) OnConfigChanged(spec dice.Spec) {
	for _, l := range ls {
		l.OnConfigChanged(spec)
	}
}

func (ls Listeners) OnFrame(spec dice.Spec, values []int) {
	for _, l := range ls {
		l.OnFrame(spec, values)
	}
}

func (ls Listeners) OnFinalResult(result dice.Result) {
	for _, l := range ls {
		l.OnFinalResult(result)
	}
}

func (ls Listeners) OnHistoryChanged(lines []string) {
	for _, l := range ls {
		l.OnHistoryChanged(lines)
	}
}
