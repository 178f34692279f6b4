package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// CursorUp and CursorDown are the arrow-only variants used while the
	// search prompt has focus, where j and k are query text.
	CursorUp   key.Binding
	CursorDown key.Binding

	Toggle      key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	LeaveSearch key.Binding
	Write       key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:        key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top")),
		End:         key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "bottom")),
		CursorUp:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		CursorDown:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "snip")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear search")),
		LeaveSearch: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "exit search")),
		Write:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write and quit")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
