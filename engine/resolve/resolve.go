// Package resolve maps card, potion and monster names from parsed commands
// to hand, potion and monster slots.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/types"
)

// AmbiguityError indicates distinct candidates matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("which %s? (%s)", e.Name, strings.Join(e.Candidates, ", "))
}

// NotFoundError indicates nothing matched a name.
type NotFoundError struct {
	Name  string
	Where string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %q %s", e.Name, e.Where)
}

// Resolve fills in Index and Target of cmd from its names. Numeric indexes
// already present are kept.
func Resolve(bc *battle.BattleContext, cmd types.Command) (types.Command, error) {
	var err error
	if cmd.Object != "" && cmd.Index < 0 {
		switch cmd.Kind {
		case types.CmdPlayCard:
			cmd.Index, err = resolveCard(bc, cmd.Object)
		case types.CmdUsePotion:
			cmd.Index, err = resolvePotion(bc, cmd.Object)
		}
		if err != nil {
			return cmd, err
		}
	}
	if cmd.TargetName != "" && cmd.Target < 0 {
		cmd.Target, err = resolveMonster(bc, cmd.TargetName)
		if err != nil {
			return cmd, err
		}
	}
	return cmd, nil
}

// candidate is one slot that matched, with the key that decides whether two
// matches are the same thing.
type candidate struct {
	slot  int
	key   string
	label string
}

// pick returns the single distinct match. Exact matches win over partial
// ones; copies of the same card resolve to the first copy.
func pick(name, where string, exact, partial []candidate, distinctSlots bool) (int, error) {
	for _, tier := range [][]candidate{exact, partial} {
		if len(tier) == 0 {
			continue
		}
		var labels []string
		seen := map[string]bool{}
		for _, c := range tier {
			k := c.key
			if distinctSlots {
				k = fmt.Sprint(c.slot)
			}
			if !seen[k] {
				seen[k] = true
				labels = append(labels, fmt.Sprintf("%d %s", c.slot, c.label))
			}
		}
		if len(labels) > 1 {
			return -1, &AmbiguityError{Name: name, Candidates: labels}
		}
		return tier[0].slot, nil
	}
	return -1, &NotFoundError{Name: name, Where: where}
}

func resolveCard(bc *battle.BattleContext, name string) (int, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	wantUpgraded := strings.HasSuffix(query, "+")
	query = strings.TrimSpace(strings.TrimSuffix(query, "+"))

	var exact, partial []candidate
	for i := 0; i < bc.Hand.Len(); i++ {
		c := bc.Hand.At(i)
		if wantUpgraded && !c.Upgraded {
			continue
		}
		cand := candidate{slot: i, key: c.String(), label: c.Name()}
		switch matchName(query, c.ID.Name(), c.ID.Enum()) {
		case matchExact:
			exact = append(exact, cand)
		case matchPartial:
			partial = append(partial, cand)
		}
	}
	return pick(name, "in hand", exact, partial, false)
}

func resolvePotion(bc *battle.BattleContext, name string) (int, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	var exact, partial []candidate
	for i := 0; i < bc.PotionCapacity; i++ {
		p := bc.Potions[i]
		if !p.IsPotion() {
			continue
		}
		cand := candidate{slot: i, key: p.String(), label: p.Name()}
		switch matchName(query, p.Name(), p.String()) {
		case matchExact:
			exact = append(exact, cand)
		case matchPartial:
			partial = append(partial, cand)
		}
	}
	return pick(name, "in potion slots", exact, partial, false)
}

// resolveMonster matches living monsters. Two monsters of the same kind are
// distinct targets, so they are reported as ambiguous.
func resolveMonster(bc *battle.BattleContext, name string) (int, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	var exact, partial []candidate
	for _, t := range bc.AliveMonsters() {
		m := &bc.Monsters[t]
		n := m.ID.Name()
		cand := candidate{slot: t, key: n, label: n}
		switch matchName(query, n, "") {
		case matchExact:
			exact = append(exact, cand)
		case matchPartial:
			partial = append(partial, cand)
		}
	}
	return pick(name, "among the monsters", exact, partial, true)
}

type match uint8

const (
	matchNone match = iota
	matchPartial
	matchExact
)

// matchName compares a lowercased query against a display name and an enum
// spelling. Exact covers the display name, the enum ("strike_red") and the
// enum with spaces. Partial means the query is one word of the name.
func matchName(query, display, enum string) match {
	d := strings.ToLower(display)
	if query == d {
		return matchExact
	}
	if enum != "" {
		e := strings.ToLower(enum)
		if query == e || strings.ReplaceAll(query, " ", "_") == e {
			return matchExact
		}
	}
	for _, word := range strings.Fields(d) {
		if word == query {
			return matchPartial
		}
	}
	return matchNone
}
