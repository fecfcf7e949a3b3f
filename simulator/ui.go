package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/app"
	"github.com/rook-computer/diceroller/internal/app/screens"
	"github.com/rook-computer/diceroller/internal/buttons"
	"github.com/rook-computer/diceroller/internal/dice"
)

// simUI is the terminal front end. It implements session.Listener; every
// callback is forwarded to the tview event loop.
type simUI struct {
	app     *tview.Application
	actions *app.App
	logger  *zap.Logger
	ctx     context.Context
	footer  string

	header   *tview.TextView
	count    *tview.InputField
	sides    *tview.DropDown
	diceView *tview.TextView
	total    *tview.TextView
	history  *tview.TextView
	status   *tview.TextView
	root     *tview.Flex
	focus    []tview.Primitive
	focusIdx int

	// syncing is set while widgets mirror a config change, so their change
	// callbacks do not reconfigure the session again.
	syncing atomic.Bool
}

func newSimUI(ctx context.Context, logger *zap.Logger, footer string) *simUI {
	return &simUI{app: tview.NewApplication(), ctx: ctx, logger: logger, footer: footer}
}

// bind attaches the action handler. Presets come from its session.
func (ui *simUI) bind(actions *app.App) {
	ui.actions = actions
	ui.build(actions.Session.Presets())
	ui.showConfig(actions.Session.Config())
}

func (ui *simUI) build(presets []dice.Preset) {
	ui.header = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	ui.header.SetText("[gold::b]" + screens.Title + "[-:-:-]\n[gray]" + screens.Subtitle + "[-]")

	ui.count = tview.NewInputField().
		SetLabel("Dice ").
		SetFieldWidth(4).
		SetAcceptanceFunc(tview.InputFieldInteger)
	ui.count.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(ui.count.GetText()))
		if err != nil {
			ui.setStatus("[red]dice count must be a number[-]")
			return
		}
		sides := ui.actions.Session.Config().Sides
		go ui.configure(n, sides)
	})

	ui.sides = tview.NewDropDown().SetLabel("Type ")
	ui.sides.SetOptions(sidesLabels(), func(_ string, index int) {
		if ui.syncing.Load() || index < 0 {
			return
		}
		count := ui.actions.Session.Config().Count
		go ui.configure(count, dice.StandardSides[index])
	})

	rollButton := tview.NewButton("Roll").SetSelectedFunc(func() { ui.dispatch(buttons.Event{Action: buttons.Roll}) })
	clearButton := tview.NewButton("Clear").SetSelectedFunc(func() { ui.dispatch(buttons.Event{Action: buttons.ClearHistory}) })
	controls := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.count, 0, 1, true).
		AddItem(ui.sides, 0, 1, false).
		AddItem(rollButton, 10, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(clearButton, 10, 0, false)

	presetRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	presetButtons := make([]tview.Primitive, 0, len(presets))
	for i, p := range presets {
		label := p.Name
		if i < 10 {
			label = strconv.Itoa((i+1)%10) + " " + label
		}
		b := tview.NewButton(label).SetSelectedFunc(func() {
			ui.dispatch(buttons.Event{Action: buttons.QuickRoll, Preset: i})
		})
		presetRow.AddItem(b, 0, 1, false).AddItem(tview.NewBox(), 1, 0, false)
		presetButtons = append(presetButtons, b)
	}

	ui.diceView = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	ui.diceView.SetBorder(true).SetTitle(" Dice ")
	ui.diceView.SetText(facesText(nil, false))
	ui.total = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)

	ui.history = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	ui.history.SetBorder(true).SetTitle(" History ")

	ui.status = tview.NewTextView().SetDynamicColors(true)
	ui.setStatus(ui.footer)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(controls, 1, 0, true).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(presetRow, 1, 0, false).
		AddItem(ui.diceView, 0, 1, false).
		AddItem(ui.total, 1, 0, false)
	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(left, 0, 3, true).
		AddItem(ui.history, 0, 2, false)

	help := tview.NewTextView().SetDynamicColors(true).SetText(helpText)
	ui.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.header, 2, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(ui.status, 1, 0, false).
		AddItem(help, 1, 0, false)

	ui.focus = append([]tview.Primitive{ui.count, ui.sides, rollButton, clearButton}, presetButtons...)
	ui.focus = append(ui.focus, ui.history)
	ui.app.SetInputCapture(ui.capture)
}

func (ui *simUI) capture(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyTab:
		ui.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		ui.cycleFocus(-1)
		return nil
	}
	// Typing into the count field and an open dropdown keep their keys.
	if ui.app.GetFocus() == ui.count || ui.sides.IsOpen() {
		if ev.Key() == tcell.KeyEscape {
			ui.app.SetFocus(ui.history)
			return nil
		}
		return ev
	}
	if action, ok := keyAction(ev); ok {
		ui.dispatch(action)
		return nil
	}
	return ev
}

func (ui *simUI) cycleFocus(step int) {
	if len(ui.focus) == 0 {
		return
	}
	ui.focusIdx = (ui.focusIdx + step + len(ui.focus)) % len(ui.focus)
	ui.app.SetFocus(ui.focus[ui.focusIdx])
}

// dispatch runs an action off the UI goroutine; the session blocks while it
// supersedes a running animation, and that animation reports back through
// QueueUpdateDraw.
func (ui *simUI) dispatch(ev buttons.Event) {
	if ev.Action == buttons.Exit {
		ui.app.Stop()
		return
	}
	go func() {
		if err := ui.actions.HandleEvent(ui.ctx, ev); err != nil {
			ui.setStatus("[red]" + tview.Escape(err.Error()) + "[-]")
			return
		}
		ui.setStatus(ui.footer)
	}()
}

func (ui *simUI) configure(count, sides int) {
	if err := ui.actions.Session.Configure(count, sides); err != nil {
		ui.setStatus("[red]" + tview.Escape(err.Error()) + "[-]")
		// Put the widgets back on the configuration still in effect.
		spec := ui.actions.Session.Config()
		ui.app.QueueUpdateDraw(func() { ui.showConfig(spec) })
		return
	}
	ui.setStatus(ui.footer)
}

func (ui *simUI) setStatus(text string) {
	ui.app.QueueUpdateDraw(func() { ui.status.SetText(text) })
}

// showConfig mirrors spec into the widgets. Call on the UI goroutine.
func (ui *simUI) showConfig(spec dice.Spec) {
	ui.syncing.Store(true)
	defer ui.syncing.Store(false)
	if ui.app.GetFocus() != ui.count {
		ui.count.SetText(strconv.Itoa(spec.Count))
	}
	if idx := sidesIndex(spec.Sides); idx >= 0 {
		ui.sides.SetCurrentOption(idx)
	}
	ui.diceView.SetTitle(fmt.Sprintf(" Dice: %s ", spec))
}

func (ui *simUI) OnConfigChanged(spec dice.Spec) {
	ui.app.QueueUpdateDraw(func() { ui.showConfig(spec) })
}

func (ui *simUI) OnFrame(spec dice.Spec, values []int) {
	text := facesText(values, false)
	ui.app.QueueUpdateDraw(func() {
		ui.diceView.SetText(text)
		ui.total.SetText("[gray]rolling...[-]")
	})
}

func (ui *simUI) OnFinalResult(result dice.Result) {
	faces, total := facesText(result.Values, true), totalText(result)
	ui.app.QueueUpdateDraw(func() {
		ui.diceView.SetText(faces)
		ui.total.SetText(total)
	})
	ui.logger.Debug("final", zap.Stringer("result", result))
}

func (ui *simUI) OnHistoryChanged(lines []string) {
	text := historyText(lines)
	ui.app.QueueUpdateDraw(func() {
		ui.history.SetText(text)
		ui.history.ScrollToEnd()
	})
}

func (ui *simUI) run() error {
	return ui.app.SetRoot(ui.root, true).EnableMouse(true).Run()
}
