package tui

import "charm.land/bubbles/v2/key"

// KeyMap holds the list-mode bindings shown in the help footer.
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Toggle         key.Binding
	Edit           key.Binding
	Delete         key.Binding
	ClearCompleted key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	CycleFilter    key.Binding
	FocusEntry     key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// EntryKeyMap holds bindings active while the new task field has focus.
type EntryKeyMap struct {
	Submit key.Binding
	Leave  key.Binding
	Quit   key.Binding
}

// EditorKeyMap holds bindings active while a row is being edited.
type EditorKeyMap struct {
	Commit key.Binding
	Blur   key.Binding
	Delete key.Binding
}

// DefaultKeyMap returns the default list bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:         key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space", "toggle")),
		Edit:           key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:         key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		FilterAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		CycleFilter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		FocusEntry:     key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "new task")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// DefaultEntryKeyMap returns the default new task field bindings.
func DefaultEntryKeyMap() EntryKeyMap {
	return EntryKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Leave:  key.NewBinding(key.WithKeys("tab", "esc"), key.WithHelp("tab", "list")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// DefaultEditorKeyMap returns the default row editor bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Blur:   key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "done")),
		Delete: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Delete, k.CycleFilter, k.FocusEntry, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit},
		{k.Delete, k.ClearCompleted, k.FocusEntry},
		{k.FilterAll, k.FilterActive, k.FilterDone, k.CycleFilter},
		{k.Help, k.Quit},
	}
}

// ShortHelp implements help.KeyMap.
func (k EntryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Leave, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k EntryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ShortHelp implements help.KeyMap.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Blur, k.Delete}
}

// FullHelp implements help.KeyMap.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
