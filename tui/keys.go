package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keyMap holds the TUI bindings. Policy and EndTurn only fire on an empty
// prompt; otherwise the key is typed.
type keyMap struct {
	Quit    key.Binding
	Submit  key.Binding
	Older   key.Binding
	Newer   key.Binding
	Scroll  key.Binding
	Policy  key.Binding
	EndTurn key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "act")),
		Older:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "recall")),
		Newer:   key.NewBinding(key.WithKeys("down")),
		Scroll:  key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d"), key.WithHelp("pgup/pgdn", "scroll")),
		Policy:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "policy move")),
		EndTurn: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end turn")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Policy, k.EndTurn, k.Older, k.Scroll, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Policy, k.EndTurn}, {k.Older, k.Scroll, k.Quit}}
}

// viewportKeys leaves Up/Down to the recall ring.
func viewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
