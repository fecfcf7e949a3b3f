package screens

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/render"
	"github.com/rook-computer/diceroller/internal/render/layout"
	"github.com/rook-computer/diceroller/internal/state"
)

const (
	Title    = "ULTIMATE DICE ROLLER"
	Subtitle = "roll any number of polyhedral dice"

	headerHeight = 170
	historyWidth = 560
	margin       = 40
	qrSize       = 240
)

// RollScreen is the single dice roller screen.
type RollScreen struct {
	Presets []dice.Preset
}

func NewRollScreen(presets []dice.Preset) *RollScreen {
	return &RollScreen{Presets: presets}
}

func (*RollScreen) Start(ctx context.Context) error { return nil }
func (*RollScreen) Stop() error                     { return nil }

func (screen *RollScreen) Draw(drawer render.Drawer, st state.State) {
	drawer.FillBackground()
	w, h := drawer.Size()
	full := image.Rect(0, 0, w, h)

	header, body := layout.SplitHorizontal(full, headerHeight)
	screen.drawHeader(drawer, header)

	main, side := layout.SplitVertical(body, w-historyWidth)
	main = layout.Inset(main, margin)
	side = layout.Inset(side, margin/2)

	controls, rest := layout.SplitHorizontal(main, 60)
	presets, rest := layout.SplitHorizontal(rest, 70)
	diceArea, footer := layout.SplitHorizontal(rest, rest.Dy()-200)

	screen.drawControls(drawer, controls, st)
	screen.drawPresets(drawer, presets, st)
	screen.drawDice(drawer, diceArea, st)
	screen.drawFooter(drawer, footer, st)
	screen.drawHistory(drawer, side, st)
}

func (screen *RollScreen) drawHeader(drawer render.Drawer, rect image.Rectangle) {
	cx := rect.Min.X + rect.Dx()/2
	m := drawer.DrawText(Title, cx, rect.Min.Y+30, render.TextStyle{Color: render.Title, Size: 72, Bold: true, Align: render.TextAlignCenter})
	drawer.DrawText(Subtitle, cx, rect.Min.Y+40+m.Height, render.TextStyle{Color: render.Muted, Size: 28, Align: render.TextAlignCenter})
}

func (screen *RollScreen) drawControls(drawer render.Drawer, rect image.Rectangle, st state.State) {
	style := render.TextStyle{Color: render.Foreground, Size: 36, Bold: true}
	m := drawer.DrawText(fmt.Sprintf("Dice: %d   Type: d%d", st.Spec.Count, st.Spec.Sides), rect.Min.X, rect.Min.Y, style)
	hint := "SPACE roll  ←→ count  ↑↓ type  C clear"
	drawer.DrawText(hint, rect.Max.X, rect.Min.Y+(m.Height-24)/2, render.TextStyle{Color: render.Muted, Size: 24, Align: render.TextAlignRight})
}

func (screen *RollScreen) drawPresets(drawer render.Drawer, rect image.Rectangle, st state.State) {
	if len(screen.Presets) == 0 {
		return
	}
	gap := 10
	cellW := (rect.Dx() - gap*(len(screen.Presets)-1)) / len(screen.Presets)
	for i, preset := range screen.Presets {
		x := rect.Min.X + i*(cellW+gap)
		cell := image.Rect(x, rect.Min.Y, x+cellW, rect.Max.Y-10)
		color := render.Muted
		if preset.Spec == st.Spec {
			color = render.Accent
			drawer.FillRect(cell, render.PanelColor)
		}
		drawer.StrokeRect(cell, color, 2)

		label := preset.Name
		if key := presetKey(i); key != "" {
			label = key + " " + label
		}
		m := drawer.MeasureText(label, render.TextStyle{Size: 24})
		drawer.DrawText(label, cell.Min.X+cell.Dx()/2, cell.Min.Y+(cell.Dy()-m.Height)/2, render.TextStyle{Color: color, Size: 24, Align: render.TextAlignCenter})
	}
}

// presetKey is the number key bound to the i-th preset: 1-9 then 0.
func presetKey(i int) string {
	switch {
	case i < 9:
		return strconv.Itoa(i + 1)
	case i == 9:
		return "0"
	default:
		return ""
	}
}

func (screen *RollScreen) drawDice(drawer render.Drawer, rect image.Rectangle, st state.State) {
	if st.Faces == nil {
		msg := "press SPACE to roll " + st.Spec.String()
		drawer.DrawText(msg, rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2-20, render.TextStyle{Color: render.Muted, Size: 40, Align: render.TextAlignCenter})
		return
	}
	style := render.DieRolling
	if st.Final {
		style = render.DieFinal
	}
	cells := layout.DiceGrid(rect, len(st.Faces), layout.MaxPerRow, 24)
	for i, cell := range cells {
		drawer.DrawDie(cell, st.Faces[i], st.Spec.Sides, style)
	}
}

func (screen *RollScreen) drawFooter(drawer render.Drawer, rect image.Rectangle, st state.State) {
	cx := rect.Min.X + rect.Dx()/2
	var text string
	switch {
	case st.Phase == state.ANIMATING:
		text = "Rolling..."
	case st.Final:
		text = "Total: " + strconv.Itoa(st.Total)
	}
	m := render.TextMetrics{}
	if text != "" {
		m = drawer.DrawText(text, cx, rect.Min.Y+20, render.TextStyle{Color: render.TotalColor, Size: 80, Bold: true, Align: render.TextAlignCenter})
	}
	if st.Message != "" {
		drawer.DrawText(st.Message, cx, rect.Min.Y+40+m.Height, render.TextStyle{Color: render.ErrorColor, Size: 30, Align: render.TextAlignCenter})
	}
}

func (screen *RollScreen) drawHistory(drawer render.Drawer, rect image.Rectangle, st state.State) {
	drawer.FillRect(rect, render.PanelColor)
	inner := layout.Inset(rect, 20)
	m := drawer.DrawText("History", inner.Min.X, inner.Min.Y, render.TextStyle{Color: render.Title, Size: 36, Bold: true})

	lines, qrArea := layout.SplitHorizontal(inner, inner.Dy()-qrSize)
	y := lines.Min.Y + m.Height + 20
	lineStyle := render.TextStyle{Color: render.Foreground, Size: 22, Mono: true}
	for _, line := range st.History {
		lm := drawer.MeasureText(line, lineStyle)
		if y+lm.Height > lines.Max.Y {
			break
		}
		drawer.DrawText(truncate(line, 40), lines.Min.X, y, lineStyle)
		y += lm.LineHeight
	}

	if n := len(st.History); n > 0 {
		drawer.DrawQRCode(st.History[n-1], qrArea)
	}
}

// truncate shortens s to at most n runes with a trailing ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
