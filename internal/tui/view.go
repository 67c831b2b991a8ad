package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/hay-kot/tasklist/internal/core/styles"
	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/hay-kot/tasklist/internal/tasklist"
)

var filterLabels = map[task.Filter]string{
	task.FilterAll:       "All",
	task.FilterActive:    "Active",
	task.FilterCompleted: "Completed",
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	sections := []string{
		styles.HeaderStyle.Render("todos"),
		m.renderFilters(),
		m.renderEntry(),
		"",
		m.renderRows(),
		"",
		styles.RemainingStyle.Render(m.view.Remaining),
	}

	if m.status != "" {
		sections = append(sections, styles.StatusErrStyle.Render("error: "+m.status))
	}

	sections = append(sections, "", m.renderHelp())

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

func (m Model) renderFilters() string {
	tabs := make([]string, 0, len(task.Filters))
	for _, f := range task.Filters {
		label := filterLabels[f]
		if f == m.view.Filter {
			tabs = append(tabs, styles.FilterSelectedStyle.Render(label))
		} else {
			tabs = append(tabs, styles.FilterNormalStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

func (m Model) renderEntry() string {
	if m.focus == focusEntry {
		return styles.InputFocusedStyle.Render(m.entry.View())
	}
	return styles.InputStyle.Render(m.entry.View())
}

func (m Model) renderRows() string {
	if m.view.Empty() {
		return styles.PlaceholderStyle.Render(m.view.Placeholder)
	}

	lines := make([]string, 0, len(m.view.Rows))
	for i, row := range m.view.Rows {
		lines = append(lines, m.renderRow(row, i == m.cursor && m.focus != focusEntry))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row tasklist.Row, selected bool) string {
	pointer := "  "
	if selected {
		pointer = styles.TaskCursorStyle.Render("❯ ")
	}

	checkbox := styles.CheckboxStyle.Render("[ ]")
	if row.Completed {
		checkbox = styles.CheckboxDoneStyle.Render("[x]")
	}

	var text string
	switch {
	case row.Editing && m.focus == focusEditor:
		text = styles.TaskEditingStyle.Render(m.editor.View())
	case row.Completed:
		text = styles.TaskCompletedStyle.Render(row.Text)
	default:
		text = styles.TaskActiveStyle.Render(row.Text)
	}

	return pointer + checkbox + " " + text
}

func (m Model) renderHelp() string {
	switch m.focus {
	case focusEntry:
		return m.help.View(m.entryKeys)
	case focusEditor:
		return m.help.View(m.editorKeys)
	default:
		return m.help.View(m.keys)
	}
}
