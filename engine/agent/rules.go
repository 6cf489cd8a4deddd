package agent

import (
	"sort"

	"github.com/nathoo/spirecore/engine/battle"
)

// candidate is a scored action. Order is the position the candidate was
// generated in and breaks ties.
type candidate struct {
	Action battle.Action
	Value  int
	Order  int
}

// selectBest filters out candidates that fail validation or carry no value,
// ranks the rest by value (desc) then generation order (asc), and returns the
// winner.
func selectBest(bc *battle.BattleContext, cands []candidate) (battle.Action, bool) {
	// 1. Filter.
	var kept []candidate
	for _, c := range cands {
		if c.Value <= 0 {
			continue
		}
		if bc.Validate(c.Action) != nil {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return battle.Action{}, false
	}

	// 2. Rank.
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Value != kept[j].Value {
			return kept[i].Value > kept[j].Value
		}
		return kept[i].Order < kept[j].Order
	})

	// 3. Select first.
	return kept[0].Action, true
}
