package toast

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the toast key bindings
type KeyMap struct {
	Dismiss key.Binding
}

// DefaultKeyMap returns the default bindings. Dismiss behaves like a tap and
// honours DismissOnTap.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss toast"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
