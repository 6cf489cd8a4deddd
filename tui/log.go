package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type logLine struct {
	kind lineKind
	text string
}

// battleLog keeps the narration unstyled so it can be re-wrapped when the
// terminal is resized.
type battleLog struct {
	lines []logLine
}

// echo records what the player (or the policy) submitted.
func (l *battleLog) echo(s string) {
	l.lines = append(l.lines, logLine{kindInput, "> " + s})
}

// output records engine narration, classified line by line.
func (l *battleLog) output(lines ...string) {
	for _, s := range lines {
		l.lines = append(l.lines, logLine{classifyLine(s), s})
	}
}

func (l *battleLog) system(lines ...string) {
	for _, s := range lines {
		l.lines = append(l.lines, logLine{kindSystem, "[" + s + "]"})
	}
}

// turnBreak separates the narration of two player turns.
func (l *battleLog) turnBreak(turn int) {
	l.lines = append(l.lines, logLine{kindRule, fmt.Sprintf("turn %d", turn)})
}

func (l *battleLog) contains(sub string) bool {
	for _, ln := range l.lines {
		if strings.Contains(ln.text, sub) {
			return true
		}
	}
	return false
}

// render wraps and styles every line at width.
func (l *battleLog) render(width int) string {
	width = max(width, 10)
	out := make([]string, 0, len(l.lines))
	for _, ln := range l.lines {
		if ln.kind == kindRule {
			out = append(out, styleFor(kindRule).Render(rule(ln.text, width)))
			continue
		}
		out = append(out, styleFor(ln.kind).Render(ansi.Wrap(ln.text, width, "")))
	}
	return strings.Join(out, "\n")
}

// rule renders "-- turn 3 " padded with dashes to width.
func rule(label string, width int) string {
	head := "-- " + label + " "
	if len(head) >= width {
		return head
	}
	return head + strings.Repeat("-", width-len(head))
}
