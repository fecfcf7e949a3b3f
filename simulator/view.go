package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/tview"

	"github.com/rook-computer/diceroller/internal/dice"
)

// facesText renders dice as boxed numbers. Rolling faces are dimmed.
func facesText(values []int, final bool) string {
	if len(values) == 0 {
		return "[gray]press space to roll[-]"
	}
	color := "gray"
	if final {
		color = "white::b"
	}
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(" ")
			if i%10 == 0 {
				b.WriteString("\n")
			}
		}
		fmt.Fprintf(&b, "[%s]%s[-:-:-]", color, tview.Escape(fmt.Sprintf("[%3d]", v)))
	}
	return b.String()
}

func totalText(result dice.Result) string {
	return fmt.Sprintf("[gold::b]Total: %d[-:-:-]  [gray]%s[-]", result.Total(), tview.Escape(result.Spec.String()+" -> "+dice.FormatValues(result.Values)))
}

func historyText(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "[gray]%2d[-] %s\n", i+1, tview.Escape(line))
	}
	return b.String()
}

func sidesLabels() []string {
	out := make([]string, len(dice.StandardSides))
	for i, s := range dice.StandardSides {
		out[i] = "d" + strconv.Itoa(s)
	}
	return out
}

func sidesIndex(sides int) int {
	for i, s := range dice.StandardSides {
		if s == sides {
			return i
		}
	}
	return -1
}
