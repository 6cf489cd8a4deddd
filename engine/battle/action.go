package battle

import (
	"errors"
	"fmt"

	"github.com/nathoo/spirecore/engine/assert"
	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/types"
)

// ActionKind tags an Action.
type ActionKind uint8

const (
	ActionPlayCard ActionKind = iota
	ActionUsePotion
	ActionEndTurn
)

// Action is one player decision. Target is a monster slot and is ignored
// when the card or potion needs none.
type Action struct {
	Kind   ActionKind
	Idx    int
	Target int
}

func PlayCard(idx, target int) Action {
	return Action{Kind: ActionPlayCard, Idx: idx, Target: target}
}

func UsePotion(idx, target int) Action {
	return Action{Kind: ActionUsePotion, Idx: idx, Target: target}
}

func EndTurn() Action {
	return Action{Kind: ActionEndTurn, Target: -1}
}

// String renders the action in the textual form the parser reads back.
func (a Action) String() string {
	switch a.Kind {
	case ActionPlayCard:
		if a.Target >= 0 {
			return fmt.Sprintf("play_card_%d@%d", a.Idx, a.Target)
		}
		return fmt.Sprintf("play_card_%d", a.Idx)
	case ActionUsePotion:
		if a.Target >= 0 {
			return fmt.Sprintf("use_potion_%d@%d", a.Idx, a.Target)
		}
		return fmt.Sprintf("use_potion_%d", a.Idx)
	case ActionEndTurn:
		return "end_turn"
	}
	return "unknown"
}

// FromCommand converts a parsed command into an action. ok is false for
// commands that are not battle actions.
func FromCommand(c types.Command) (a Action, ok bool) {
	switch c.Kind {
	case types.CmdPlayCard:
		return PlayCard(c.Index, c.Target), true
	case types.CmdUsePotion:
		return UsePotion(c.Index, c.Target), true
	case types.CmdEndTurn:
		return EndTurn(), true
	}
	return Action{}, false
}

// Validation errors.
var (
	ErrBattleOver         = errors.New("battle is over")
	ErrHandIndex          = errors.New("no card at hand index")
	ErrNotEnoughEnergy    = errors.New("not enough energy")
	ErrUnplayable         = errors.New("card cannot be played")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrPotionIndex        = errors.New("no potion slot at index")
	ErrEmptyPotionSlot    = errors.New("potion slot is empty")
	ErrPotionNotDrinkable = errors.New("potion cannot be used")
	ErrUnknownAction      = errors.New("unknown action")
)

// Validate reports whether a can be executed in the current state without
// touching it.
func (bc *BattleContext) Validate(a Action) error {
	if bc.IsOver() {
		return ErrBattleOver
	}
	switch a.Kind {
	case ActionPlayCard:
		if a.Idx < 0 || a.Idx >= bc.Hand.Len() {
			return fmt.Errorf("%w: %d", ErrHandIndex, a.Idx)
		}
		c := bc.Hand.At(a.Idx)
		if !c.IsValid() || c.Cost() < 0 {
			return fmt.Errorf("%w: %s", ErrUnplayable, c.Name())
		}
		if c.Type() == cards.Attack && bc.Player.Entangled {
			return fmt.Errorf("%w: %s while entangled", ErrUnplayable, c.Name())
		}
		if bc.cardCost(c) > bc.Player.Energy {
			return fmt.Errorf("%w: %s costs %d, have %d", ErrNotEnoughEnergy, c.Name(), bc.cardCost(c), bc.Player.Energy)
		}
		if c.RequiresTarget() && !bc.validTarget(a.Target) {
			return fmt.Errorf("%w: %d", ErrInvalidTarget, a.Target)
		}
		return nil

	case ActionUsePotion:
		if a.Idx < 0 || a.Idx >= bc.PotionCapacity {
			return fmt.Errorf("%w: %d", ErrPotionIndex, a.Idx)
		}
		p := bc.Potions[a.Idx]
		if !p.IsPotion() {
			return fmt.Errorf("%w: %d", ErrEmptyPotionSlot, a.Idx)
		}
		if !p.CanDrink() {
			return fmt.Errorf("%w: %s", ErrPotionNotDrinkable, p.Name())
		}
		if p.RequiresTarget() && !bc.validTarget(a.Target) {
			return fmt.Errorf("%w: %d", ErrInvalidTarget, a.Target)
		}
		return nil

	case ActionEndTurn:
		return nil
	}
	return ErrUnknownAction
}

func (bc *BattleContext) validTarget(t int) bool {
	return t >= 0 && t < bc.MonsterCount && bc.Monsters[t].IsAlive()
}

// cardCost is the energy a card costs to play right now.
func (bc *BattleContext) cardCost(c cards.Card) int {
	return c.Cost()
}

// Execute applies a validated action. Unvalidated input is a caller bug;
// with the stsassert tag it panics instead of corrupting state.
func (bc *BattleContext) Execute(a Action) {
	if assert.Enabled {
		err := bc.Validate(a)
		assert.That(err == nil, fmt.Sprintf("execute %s: %v", a, err))
	}
	switch a.Kind {
	case ActionPlayCard:
		bc.playCard(a.Idx, a.Target)
	case ActionUsePotion:
		bc.drinkPotion(a.Idx, a.Target)
	case ActionEndTurn:
		bc.endTurn()
	}
}

// Step validates and then executes a. Rejected actions leave bc unchanged.
func (bc *BattleContext) Step(a Action) error {
	if err := bc.Validate(a); err != nil {
		return err
	}
	bc.Execute(a)
	return nil
}

// LegalActions lists every action that validates, cards first in hand
// order, then potions, then end turn. Targeted actions appear once per
// living monster.
func (bc *BattleContext) LegalActions() []Action {
	if bc.IsOver() {
		return nil
	}
	var out []Action
	alive := bc.AliveMonsters()
	add := func(a Action, targeted bool) {
		if !targeted {
			a.Target = -1
			if bc.Validate(a) == nil {
				out = append(out, a)
			}
			return
		}
		for _, t := range alive {
			a.Target = t
			if bc.Validate(a) == nil {
				out = append(out, a)
			}
		}
	}
	for i := 0; i < bc.Hand.Len(); i++ {
		add(PlayCard(i, -1), bc.Hand.At(i).RequiresTarget())
	}
	for i := 0; i < bc.PotionCapacity; i++ {
		add(UsePotion(i, -1), bc.Potions[i].RequiresTarget())
	}
	out = append(out, EndTurn())
	return out
}
