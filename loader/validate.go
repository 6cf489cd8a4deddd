package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/spirecore/engine/parser"
	"github.com/nathoo/spirecore/types"
)

// MaxAscension is the highest supported ascension level.
const MaxAscension = 20

// ValidationError collects all validation errors and warnings of one
// scenario. Every entry starts with the offending field.
type ValidationError struct {
	Scenario string
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	name := e.Scenario
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("scenario %s: validation failed with %d error(s):\n  %s",
		name, len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(field, format string, args ...any) {
	e.Errors = append(e.Errors, field+": "+fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(field, format string, args ...any) {
	e.Warnings = append(e.Warnings, field+": "+fmt.Sprintf(format, args...))
}

func validateHeader(def types.ScenarioDef, ve *ValidationError) {
	if def.Name == "" {
		ve.errorf("name", "is required")
	}
	if def.Ascension < 0 || def.Ascension > MaxAscension {
		ve.errorf("ascension", "%d out of range 0..%d", def.Ascension, MaxAscension)
	}
	if def.Floor < 0 {
		ve.errorf("floor", "must not be negative, got %d", def.Floor)
	}
	if def.PlayerHp < 0 {
		ve.errorf("initial_state.player_hp", "must not be negative, got %d", def.PlayerHp)
	}
	if def.PlayerMaxHp < 0 {
		ve.errorf("initial_state.player_max_hp", "must not be negative, got %d", def.PlayerMaxHp)
	}
	if def.PlayerHp > 0 && def.PlayerMaxHp > 0 && def.PlayerHp > def.PlayerMaxHp {
		ve.errorf("initial_state.player_hp", "%d exceeds player_max_hp %d", def.PlayerHp, def.PlayerMaxHp)
	}
	if def.Gold < 0 {
		ve.errorf("initial_state.gold", "must not be negative, got %d", def.Gold)
	}
}

// validateActions checks that every scripted action parses as a battle
// action. Whether it is legal depends on the battle and is checked when the
// script runs.
func validateActions(actions []string, ve *ValidationError) {
	for i, a := range actions {
		switch parser.Parse(a).Kind {
		case types.CmdPlayCard, types.CmdUsePotion, types.CmdEndTurn:
		default:
			ve.errorf(fmt.Sprintf("action_sequence[%d]", i), "%q is not a battle action", a)
		}
	}
}
