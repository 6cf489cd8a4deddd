package parser

import (
	"testing"

	"github.com/nathoo/spirecore/types"
)

func cmd(k types.CommandKind, idx, target int) types.Command {
	return types.Command{Kind: k, Index: idx, Target: target}
}

func named(k types.CommandKind, object, target string) types.Command {
	return types.Command{Kind: k, Index: -1, Target: -1, Object: object, TargetName: target}
}

func TestParse(t *testing.T) {
	unknown := cmd(types.CmdUnknown, -1, -1)

	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{name: "empty string", input: "", want: unknown},
		{name: "whitespace only", input: "   ", want: unknown},

		// Canonical forms
		{name: "play_card", input: "play_card_2", want: cmd(types.CmdPlayCard, 2, -1)},
		{name: "play_card with target", input: "play_card_0@1", want: cmd(types.CmdPlayCard, 0, 1)},
		{name: "use_potion", input: "use_potion_1", want: cmd(types.CmdUsePotion, 1, -1)},
		{name: "use_potion with target", input: "use_potion_2@0", want: cmd(types.CmdUsePotion, 2, 0)},
		{name: "end_turn", input: "end_turn", want: cmd(types.CmdEndTurn, -1, -1)},
		{name: "canonical upper case", input: "PLAY_CARD_3", want: cmd(types.CmdPlayCard, 3, -1)},
		{name: "canonical bad index", input: "play_card_x", want: unknown},
		{name: "canonical bad target", input: "play_card_1@", want: unknown},

		// Verb forms
		{name: "play", input: "play 1", want: cmd(types.CmdPlayCard, 1, -1)},
		{name: "play with target", input: "play 1 0", want: cmd(types.CmdPlayCard, 1, 0)},
		{name: "play on target", input: "play 4 on 2", want: cmd(types.CmdPlayCard, 4, 2)},
		{name: "play card", input: "play card 3 at 1", want: cmd(types.CmdPlayCard, 3, 1)},
		{name: "p alias", input: "p 0", want: cmd(types.CmdPlayCard, 0, -1)},
		{name: "potion", input: "potion 0 1", want: cmd(types.CmdUsePotion, 0, 1)},
		{name: "use potion", input: "use potion 2", want: cmd(types.CmdUsePotion, 2, -1)},
		{name: "drink alias", input: "drink 1", want: cmd(types.CmdUsePotion, 1, -1)},
		{name: "end", input: "end", want: cmd(types.CmdEndTurn, -1, -1)},
		{name: "end turn", input: "end turn", want: cmd(types.CmdEndTurn, -1, -1)},
		{name: "e alias", input: "e", want: cmd(types.CmdEndTurn, -1, -1)},
		{name: "pass alias", input: "  PASS ", want: cmd(types.CmdEndTurn, -1, -1)},

		// Names
		{name: "play by name", input: "play strike", want: named(types.CmdPlayCard, "strike", "")},
		{name: "play name on name", input: "play the bash on the jaw worm", want: named(types.CmdPlayCard, "bash", "jaw worm")},
		{name: "play index on name", input: "play 2 on red louse", want: types.Command{Kind: types.CmdPlayCard, Index: 2, Target: -1, TargetName: "red louse"}},
		{name: "play index then name", input: "play 2 cultist", want: types.Command{Kind: types.CmdPlayCard, Index: 2, Target: -1, TargetName: "cultist"}},
		{name: "potion by name", input: "drink fire potion at 0", want: types.Command{Kind: types.CmdUsePotion, Index: -1, Target: 0, Object: "fire potion"}},

		// Meta
		{name: "status", input: "status", want: cmd(types.CmdStatus, -1, -1)},
		{name: "look alias", input: "look", want: cmd(types.CmdStatus, -1, -1)},
		{name: "actions", input: "actions", want: cmd(types.CmdActions, -1, -1)},
		{name: "help", input: "?", want: cmd(types.CmdHelp, -1, -1)},

		// Malformed
		{name: "play without index", input: "play", want: unknown},
		{name: "play negative index", input: "play -1", want: unknown},
		{name: "play too many args", input: "play 1 2 3", want: unknown},
		{name: "end with args", input: "end 2", want: unknown},
		{name: "gibberish", input: "xyzzy", want: unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			got.Raw = ""
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_KeepsRaw(t *testing.T) {
	got := Parse("  Play 1  ")
	if got.Raw != "Play 1" {
		t.Errorf("raw: got %q", got.Raw)
	}
}
