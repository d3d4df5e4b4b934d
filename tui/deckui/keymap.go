package deckui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the composer.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Category   key.Binding
	Search     key.Binding
	SwitchPane key.Binding
	Grab       key.Binding
	Drop       key.Binding
	Cancel     key.Binding
	Add        key.Binding
	Remove     key.Binding
	Clear      key.Binding
	OpenTabs   key.Binding
	OpenPopups key.Binding
	Accept     key.Binding
	Decline    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap is the default set of keybindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "["),
		key.WithHelp("[", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "]"),
		key.WithHelp("]", "next page"),
	),
	Category: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	SwitchPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "drag"),
	),
	Drop: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "drop"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel drag"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Remove: key.NewBinding(
		key.WithKeys("d", "backspace"),
		key.WithHelp("d", "remove"),
	),
	Clear: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "clear"),
	),
	OpenTabs: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "open tabs"),
	),
	OpenPopups: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "open popups"),
	),
	Accept: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "yes"),
	),
	Decline: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "no"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns keybindings to be shown in the compact help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Drop, k.OpenTabs, k.OpenPopups, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Category, k.Search},
		{k.Grab, k.Drop, k.Cancel, k.Add, k.SwitchPane},
		{k.Remove, k.Clear, k.OpenTabs, k.OpenPopups},
		{k.Help, k.Quit},
	}
}

// BindingInfo is one documented keybinding.
type BindingInfo struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}

// Bindings lists every enabled binding in help order.
func (k KeyMap) Bindings() []BindingInfo {
	var out []BindingInfo
	for _, group := range k.FullHelp() {
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			out = append(out, BindingInfo{Key: h.Key, Action: h.Desc})
		}
	}
	return out
}
