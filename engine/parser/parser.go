// Package parser converts battle command strings into Commands.
// No grammar, just pattern matching on the first word.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nathoo/spirecore/types"
)

var verbAliases = map[string]string{
	// Play a card
	"p":    "play",
	"c":    "play",
	"card": "play",

	// Use a potion
	"use":   "potion",
	"drink": "potion",
	"quaff": "potion",
	"u":     "potion",

	// End the turn
	"e":    "end",
	"pass": "end",
	"done": "end",

	// Meta
	"s":        "status",
	"look":     "status",
	"l":        "status",
	"legal":    "actions",
	"moves":    "actions",
	"h":        "help",
	"?":        "help",
	"commands": "help",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true, "@": true, "vs": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into a Command. Unrecognized input
// yields CmdUnknown with Raw set.
func Parse(input string) types.Command {
	raw := strings.TrimSpace(input)
	cmd := types.Command{Kind: types.CmdUnknown, Index: -1, Target: -1, Raw: raw}
	if raw == "" {
		return cmd
	}
	lower := strings.ToLower(raw)

	// Canonical forms: play_card_<i>[@t], use_potion_<i>[@t], end_turn.
	if k, idx, t, ok := parseCanonical(lower); ok {
		cmd.Kind, cmd.Index, cmd.Target = k, idx, t
		return cmd
	}

	words := strings.Fields(lower)
	words = expandMultiWordVerbs(words)
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}
	args := stripArticles(words[1:])

	switch words[0] {
	case "play":
		return withArgs(cmd, types.CmdPlayCard, args)
	case "potion":
		return withArgs(cmd, types.CmdUsePotion, args)
	case "end":
		if len(args) == 0 {
			cmd.Kind = types.CmdEndTurn
		}
	case "status":
		cmd.Kind = types.CmdStatus
	case "actions":
		cmd.Kind = types.CmdActions
	case "help":
		cmd.Kind = types.CmdHelp
	}
	return cmd
}

// parseCanonical reads the forms printed by battle.Action.String.
func parseCanonical(s string) (types.CommandKind, int, int, bool) {
	if s == "end_turn" {
		return types.CmdEndTurn, -1, -1, true
	}
	var kind types.CommandKind
	var rest string
	switch {
	case strings.HasPrefix(s, "play_card_"):
		kind, rest = types.CmdPlayCard, strings.TrimPrefix(s, "play_card_")
	case strings.HasPrefix(s, "use_potion_"):
		kind, rest = types.CmdUsePotion, strings.TrimPrefix(s, "use_potion_")
	default:
		return types.CmdUnknown, -1, -1, false
	}

	idxStr, targetStr, hasTarget := strings.Cut(rest, "@")
	idx, ok := index(idxStr)
	if !ok {
		return types.CmdUnknown, -1, -1, false
	}
	target := -1
	if hasTarget {
		if target, ok = index(targetStr); !ok {
			return types.CmdUnknown, -1, -1, false
		}
	}
	return kind, idx, target, true
}

// expandMultiWordVerbs handles "end turn", "use potion", "play card".
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	switch words[0] {
	case "end":
		if words[1] == "turn" {
			return append([]string{"end"}, words[2:]...)
		}
	case "use", "drink":
		if words[1] == "potion" {
			return append([]string{"potion"}, words[2:]...)
		}
	case "play":
		if words[1] == "card" {
			return append([]string{"play"}, words[2:]...)
		}
	}
	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition. Words before it
// name the card or potion, words after it name the target. Without a
// preposition a leading index may be followed directly by the target.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	if len(words) >= 2 {
		if _, ok := index(words[0]); ok {
			return words[0], strings.Join(words[1:], " ")
		}
	}
	return strings.Join(words, " "), ""
}

// withArgs fills in the card or potion and the optional target. Each may be
// an index or a name; anything else leaves the command unknown.
func withArgs(cmd types.Command, kind types.CommandKind, args []string) types.Command {
	object, target := splitOnPreposition(args)
	if object == "" {
		return cmd
	}

	out := cmd
	out.Kind = kind
	switch idx, ok := index(object); {
	case ok:
		out.Index = idx
	case isName(object):
		out.Object = object
	default:
		return cmd
	}
	if target == "" {
		return out
	}
	switch t, ok := index(target); {
	case ok:
		out.Target = t
	case isName(target):
		out.TargetName = target
	default:
		return cmd
	}
	return out
}

// isName reports whether s could name a card, potion or monster.
func isName(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// index parses a non-negative decimal index.
func index(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return -1, false
	}
	return n, true
}
