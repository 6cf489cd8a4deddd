package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	styleCard     = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleCardDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	stylePileInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindStatus
	kindIntent
	kindDamage
	kindOutcome
	kindSystem
	kindError
	kindTrace
	kindInput
	kindRule
	kindCount
)

var kindStyles = [kindCount]lipgloss.Style{
	kindNarration: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	kindStatus:    lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	kindIntent:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	kindDamage:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	kindOutcome:   lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true),
	kindSystem:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	kindError:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	kindTrace:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	kindInput:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	kindRule:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

func styleFor(k lineKind) lipgloss.Style {
	if k < 0 || k >= kindCount {
		return kindStyles[kindNarration]
	}
	return kindStyles[k]
}

// classifyLine sorts engine narration by what it reports.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "I don't understand"),
		strings.HasPrefix(line, "which "),
		strings.HasPrefix(line, `no "`):
		return kindError
	case strings.HasPrefix(line, "Victory on turn"),
		strings.HasPrefix(line, "You concede"),
		strings.HasPrefix(line, "You are defeated"),
		strings.HasPrefix(line, "The battle is over"):
		return kindOutcome
	case strings.Contains(line, " intends "):
		return kindIntent
	case strings.HasPrefix(line, "You lose "), strings.HasSuffix(line, " dies."):
		return kindDamage
	case strings.HasPrefix(line, "Turn "),
		strings.HasPrefix(line, "Hand: "),
		strings.HasPrefix(line, "Draw "),
		strings.HasPrefix(line, "Potions: "),
		strings.HasPrefix(line, "You have "):
		return kindStatus
	default:
		return kindNarration
	}
}
