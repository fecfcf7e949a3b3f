package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/rook-computer/diceroller/internal/buttons"
	"github.com/rook-computer/diceroller/internal/dice"
)

func TestKeyAction(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want buttons.Event
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), buttons.Event{Action: buttons.Roll}, true},
		{tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), buttons.Event{Action: buttons.QuickRoll, Preset: 0}, true},
		{tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModNone), buttons.Event{Action: buttons.QuickRoll, Preset: 9}, true},
		{tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), buttons.Event{Action: buttons.ClearHistory}, true},
		{tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), buttons.Event{Action: buttons.CountUp}, true},
		{tcell.NewEventKey(tcell.KeyRune, ']', tcell.ModNone), buttons.Event{Action: buttons.SidesNext}, true},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), buttons.Event{Action: buttons.Exit}, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), buttons.Event{}, false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), buttons.Event{}, false},
	}
	for _, tc := range cases {
		got, ok := keyAction(tc.ev)
		assert.Equal(t, tc.ok, ok, tc.ev.Name())
		assert.Equal(t, tc.want, got, tc.ev.Name())
	}
}

func TestFacesText(t *testing.T) {
	assert.Contains(t, facesText(nil, false), "press space")

	final := facesText([]int{3, 5}, true)
	assert.Contains(t, final, "white::b")
	assert.Contains(t, final, "  3")
	assert.Contains(t, final, "  5")

	rolling := facesText(make([]int, 12), false)
	assert.Contains(t, rolling, "gray")
	assert.Equal(t, 1, strings.Count(rolling, "\n"), "ten dice per line")
}

func TestTotalAndHistoryText(t *testing.T) {
	res := dice.Result{Spec: dice.Spec{Count: 2, Sides: 6}, Values: []int{3, 5}}
	assert.Contains(t, totalText(res), "Total: 8")
	assert.Contains(t, totalText(res), "2d6 -> ")

	h := historyText([]string{"a", "b"})
	assert.Equal(t, 2, strings.Count(h, "\n"))
}

func TestSidesOptions(t *testing.T) {
	labels := sidesLabels()
	assert.Equal(t, "d4", labels[0])
	assert.Equal(t, "d100", labels[len(labels)-1])
	assert.Equal(t, 1, sidesIndex(6))
	assert.Equal(t, -1, sidesIndex(7))
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", displayAddr(":8080"))
	assert.Equal(t, "0.0.0.0:1", displayAddr("0.0.0.0:1"))
}
