package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nathoo/spirecore/engine/battle"
)

// intentLabel is the short form of a monster's telegraphed move:
// "Jaw Worm 44/44 atk 11", "Cultist 50/50 buff".
func intentLabel(bc *battle.BattleContext, i int) string {
	m := &bc.Monsters[i]
	label := fmt.Sprintf("%s %d/%d ", m.ID.Name(), m.CurHp, m.MaxHp)
	if dmg := bc.IntentDamage(i); dmg > 0 {
		return label + fmt.Sprintf("atk %d", dmg)
	}
	return label + strings.ToLower(strings.ReplaceAll(m.Move().Intent().String(), "_", " "))
}

// renderStatusBar produces a full-width inverted status line showing
// player hp, block and energy, the monsters' intents, and the turn.
func (m Model) renderStatusBar() string {
	bc := m.engine.Battle
	p := &bc.Player

	left := fmt.Sprintf(" HP %d/%d | Block %d | Energy %d/%d", p.CurHp, p.MaxHp, p.Block, p.Energy, p.EnergyPerTurn)
	right := fmt.Sprintf("T:%d ", bc.Turn)
	if bc.IsOver() {
		right = fmt.Sprintf("%s | T:%d ", bc.Outcome, bc.Turn)
	}

	// Show every intent if they fit, otherwise just the incoming damage.
	alive := bc.AliveMonsters()
	if len(alive) > 0 && !bc.IsOver() {
		labels := make([]string, 0, len(alive))
		for _, i := range alive {
			labels = append(labels, intentLabel(bc, i))
		}
		candidate := fmt.Sprintf("%s | T:%d ", strings.Join(labels, ", "), bc.Turn)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Incoming %d | T:%d ", bc.IncomingDamage(), bc.Turn)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

type handLabel struct {
	text     string
	playable bool
}

// handLabels names the hand with play indices, "0:Strike(1)". A card is
// playable when some legal action plays it.
func handLabels(bc *battle.BattleContext) []handLabel {
	var legal [battle.MaxHandSize]bool
	for _, a := range bc.LegalActions() {
		if a.Kind == battle.ActionPlayCard {
			legal[a.Idx] = true
		}
	}
	labels := make([]handLabel, 0, bc.Hand.Len())
	for i, c := range bc.Hand.Cards() {
		labels = append(labels, handLabel{
			text:     fmt.Sprintf("%d:%s(%d)", i, c.Name(), c.Cost()),
			playable: legal[i] && !bc.IsOver(),
		})
	}
	return labels
}

// renderHandBar shows the hand, unplayable cards dimmed, followed by the
// pile sizes. It is cut to the terminal width.
func (m Model) renderHandBar() string {
	bc := m.engine.Battle
	parts := []string{}
	for _, l := range handLabels(bc) {
		if l.playable {
			parts = append(parts, styleCard.Render(l.text))
		} else {
			parts = append(parts, styleCardDim.Render(l.text))
		}
	}
	piles := stylePileInfo.Render(fmt.Sprintf("| draw %d discard %d exhaust %d",
		bc.Draw.Len(), bc.Discard.Len(), bc.Exhaust.Len()))
	bar := " " + strings.Join(append(parts, piles), " ")
	return ansi.Truncate(bar, max(m.width, 10), "…")
}
