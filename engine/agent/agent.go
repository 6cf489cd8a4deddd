// Package agent provides battle policies and the playout loop that drives
// them. Policies only read the BattleContext they are handed; the playout
// loop is the one place that validates and executes their choices.
package agent

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/types"
)

// Policy chooses the next action for a battle.
type Policy interface {
	Name() string
	ChooseAction(bc *battle.BattleContext) battle.Action
}

// CardSelector picks which card to play this step. ok is false when no card
// is worth playing.
type CardSelector interface {
	SelectCard(bc *battle.BattleContext) (a battle.Action, ok bool)
}

// ErrUnknownPolicy is returned by FromName.
var ErrUnknownPolicy = errors.New("unknown policy")

const (
	PolicySimple   = "simple"
	PolicyAutoClad = "autoclad"
)

// Names lists the registered policy names in sorted order.
func Names() []string {
	names := []string{PolicySimple, PolicyAutoClad}
	sort.Strings(names)
	return names
}

// FromName builds a fresh policy by name.
func FromName(name string) (Policy, error) {
	switch name {
	case PolicySimple, "":
		return NewSimple(), nil
	case PolicyAutoClad:
		return NewAutoClad(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

const (
	// DefaultTurnLimit ends a stalled fight as a loss.
	DefaultTurnLimit = 100
	// DefaultActionLimit bounds the history of a single playout.
	DefaultActionLimit = 4000
)

// Agent runs playouts for one policy and keeps the action history of the
// last one.
type Agent struct {
	Policy      Policy
	TurnLimit   int
	ActionLimit int

	History []battle.Action
	// Rejected counts choices that failed validation and were replaced by
	// end turn.
	Rejected int
}

// New returns an agent with the default ceilings.
func New(p Policy) *Agent {
	return &Agent{
		Policy:      p,
		TurnLimit:   DefaultTurnLimit,
		ActionLimit: DefaultActionLimit,
	}
}

// PlayoutBattle plays bc until it has an outcome. Exceeding either ceiling
// concedes the fight.
func (a *Agent) PlayoutBattle(bc *battle.BattleContext) types.Outcome {
	a.History = a.History[:0]
	a.Rejected = 0

	for !bc.IsOver() {
		if bc.Turn > a.TurnLimit || len(a.History) >= a.ActionLimit {
			bc.Concede()
			break
		}

		// 1. Choose.
		act := a.Policy.ChooseAction(bc)

		// 2. Validate. A bad choice costs the policy its turn.
		if err := bc.Validate(act); err != nil {
			a.Rejected++
			act = battle.EndTurn()
		}

		// 3. Execute and record.
		bc.Execute(act)
		a.History = append(a.History, act)
	}
	return bc.Outcome
}
