package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/diceroller/internal/buttons"
)

const helpText = " [black:gold]space[-:-] roll  [black:gold]1-0[-:-] presets  [black:gold]+/-[-:-] dice  [black:gold][[ / ]][-:-] type  [black:gold]c[-:-] clear  [black:gold]tab[-:-] focus  [black:gold]q[-:-] quit "

// keyAction maps a terminal key to a roller action, mirroring the device
// keyboard where the terminal allows it.
func keyAction(ev *tcell.EventKey) (buttons.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyF4:
		return buttons.Event{Action: buttons.Exit}, true
	case tcell.KeyRune:
	default:
		return buttons.Event{}, false
	}

	r := ev.Rune()
	switch {
	case r == ' ':
		return buttons.Event{Action: buttons.Roll}, true
	case r >= '1' && r <= '9':
		return buttons.Event{Action: buttons.QuickRoll, Preset: int(r - '1')}, true
	case r == '0':
		return buttons.Event{Action: buttons.QuickRoll, Preset: 9}, true
	case r == 'c' || r == 'C':
		return buttons.Event{Action: buttons.ClearHistory}, true
	case r == '+' || r == '=':
		return buttons.Event{Action: buttons.CountUp}, true
	case r == '-':
		return buttons.Event{Action: buttons.CountDown}, true
	case r == ']':
		return buttons.Event{Action: buttons.SidesNext}, true
	case r == '[':
		return buttons.Event{Action: buttons.SidesPrev}, true
	case r == 'q' || r == 'Q':
		return buttons.Event{Action: buttons.Exit}, true
	}
	return buttons.Event{}, false
}
