// Package tui implements the interactive task list on bubbletea.
package tui

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/hay-kot/tasklist/internal/core/styles"
	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/hay-kot/tasklist/internal/tasklist"
	"github.com/rs/zerolog"
)

type focusArea int

const (
	focusEntry focusArea = iota
	focusList
	focusEditor
)

// Options configures the Model.
type Options struct {
	// Changes receives a value whenever the slot changes on disk. Nil
	// disables live reload.
	Changes <-chan struct{}
	// ShowHelp starts with the full help expanded.
	ShowHelp bool
	Logger   zerolog.Logger
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx context.Context
	ctl *tasklist.Controller
	log zerolog.Logger

	keys       KeyMap
	entryKeys  EntryKeyMap
	editorKeys EditorKeyMap
	help       help.Model

	entry  textinput.Model
	editor textinput.Model

	focus    focusArea
	cursor   int
	view     tasklist.View
	status   string
	changes  <-chan struct{}
	width    int
	height   int
	quitting bool
}

// New creates a Model driving ctl. The controller must already be initialized.
func New(ctx context.Context, ctl *tasklist.Controller, opts Options) Model {
	entry := textinput.New()
	entry.Placeholder = "What needs to be done?"
	entry.Prompt = "❯ "
	entryStyles := textinput.DefaultStyles(true)
	entryStyles.Focused.Prompt = lipgloss.NewStyle().Foreground(styles.CurrentPalette.Primary)
	entryStyles.Cursor.Color = styles.CurrentPalette.Primary
	entry.SetStyles(entryStyles)
	entry.Focus()

	editor := textinput.New()
	editor.Prompt = ""
	editorStyles := textinput.DefaultStyles(true)
	editorStyles.Cursor.Color = styles.CurrentPalette.Warning
	editor.SetStyles(editorStyles)

	h := help.New()
	h.ShowAll = opts.ShowHelp
	h.ShortSeparator = " • "

	m := Model{
		ctx:        ctx,
		ctl:        ctl,
		log:        opts.Logger,
		keys:       DefaultKeyMap(),
		entryKeys:  DefaultEntryKeyMap(),
		editorKeys: DefaultEditorKeyMap(),
		help:       h,
		entry:      entry,
		editor:     editor,
		focus:      focusEntry,
		changes:    opts.Changes,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForSlotChange(m.changes)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		m.entry.SetWidth(max(10, msg.Width-6))
		m.editor.SetWidth(max(10, msg.Width-10))
		return m, nil

	case slotChangedMsg:
		m.dispatch(tasklist.Event{Kind: tasklist.EventReload})
		if m.focus == focusEditor {
			if _, _, editing := m.ctl.Editing(); !editing {
				m.closeEditor()
			}
		}
		return m, waitForSlotChange(m.changes)

	case tea.KeyPressMsg:
		switch m.focus {
		case focusEntry:
			return m.updateEntry(msg)
		case focusEditor:
			return m.updateEditor(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m.forwardToInput(msg)
}

func (m Model) updateEntry(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.entryKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.entryKeys.Submit):
		text := m.entry.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		if m.dispatch(tasklist.Event{Kind: tasklist.EventAdd, Text: text}) {
			m.entry.Reset()
			m.cursor = 0
		}
		return m, nil
	case key.Matches(msg, m.entryKeys.Leave):
		m.entry.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.entry, cmd = m.entry.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.FocusEntry):
		m.focus = focusEntry
		return m, m.entry.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.selected(); ok {
			m.dispatch(tasklist.Event{Kind: tasklist.EventToggle, ID: row.ID})
		}
	case key.Matches(msg, m.keys.Edit):
		if row, ok := m.selected(); ok {
			return m.beginEdit(row.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if row, ok := m.selected(); ok {
			m.dispatch(tasklist.Event{Kind: tasklist.EventDelete, ID: row.ID})
		}
	case key.Matches(msg, m.keys.ClearCompleted):
		m.dispatch(tasklist.Event{Kind: tasklist.EventClearCompleted})
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(task.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(task.FilterActive)
	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(task.FilterCompleted)
	case key.Matches(msg, m.keys.CycleFilter):
		m.setFilter(m.view.Filter.Next())
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.editorKeys.Commit), key.Matches(msg, m.editorKeys.Blur):
		m.dispatch(tasklist.Event{Kind: tasklist.EventEditCommit, Text: m.editor.Value()})
		m.closeEditorIfSettled()
		return m, nil
	case key.Matches(msg, m.editorKeys.Delete):
		id, _, editing := m.ctl.Editing()
		if editing {
			m.dispatch(tasklist.Event{Kind: tasklist.EventDelete, ID: id})
		}
		m.closeEditorIfSettled()
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.dispatch(tasklist.Event{Kind: tasklist.EventEditInput, Text: after})
	}
	return m, cmd
}

func (m Model) beginEdit(id int64) (tea.Model, tea.Cmd) {
	m.dispatch(tasklist.Event{Kind: tasklist.EventEditBegin, ID: id})

	_, draft, editing := m.ctl.Editing()
	if !editing {
		return m, nil
	}

	m.editor.SetValue(draft)
	m.editor.CursorEnd()
	m.focus = focusEditor
	return m, m.editor.Focus()
}

// closeEditorIfSettled closes the editor unless a failed write left the
// edit open, so the draft can be retried.
func (m *Model) closeEditorIfSettled() {
	if _, _, editing := m.ctl.Editing(); editing {
		return
	}
	m.closeEditor()
}

func (m *Model) closeEditor() {
	m.editor.Blur()
	m.editor.Reset()
	m.focus = focusList
}

func (m *Model) setFilter(f task.Filter) {
	if m.dispatch(tasklist.Event{Kind: tasklist.EventFilter, Filter: string(f)}) {
		m.cursor = 0
	}
}

// forwardToInput passes non-key messages (cursor blink) to the focused input.
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusEntry:
		m.entry, cmd = m.entry.Update(msg)
	case focusEditor:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

// dispatch sends ev to the controller and re-renders whatever the outcome.
// It reports whether the event succeeded.
func (m *Model) dispatch(ev tasklist.Event) bool {
	err := m.ctl.Dispatch(m.ctx, ev)
	m.refresh()

	if err != nil {
		m.log.Error().Err(err).Str("event", string(ev.Kind)).Msg("task list update failed")
		m.status = err.Error()
		return false
	}
	m.status = ""
	return true
}

func (m *Model) refresh() {
	m.view = m.ctl.Render()
	switch {
	case len(m.view.Rows) == 0:
		m.cursor = 0
	case m.cursor >= len(m.view.Rows):
		m.cursor = len(m.view.Rows) - 1
	}
}

func (m Model) selected() (tasklist.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return tasklist.Row{}, false
	}
	return m.view.Rows[m.cursor], true
}

// Status returns the last error shown in the status line, if any.
func (m Model) Status() string {
	return m.status
}
