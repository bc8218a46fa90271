package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the session list bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Today    key.Binding
	Filter   key.Binding
	Attend   key.Binding
	Skip     key.Binding
	Cancel   key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "page")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Attend:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attended")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skipped")),
		Cancel:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancelled")),
		Reset:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pending")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Today, k.Filter, k.Attend, k.Skip, k.Cancel, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Today},
		{k.Attend, k.Skip, k.Cancel, k.Reset},
		{k.Filter, k.Quit},
	}
}
