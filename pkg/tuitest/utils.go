// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// views can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune, as typed.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)})
}

// KeyCode creates a key press message for a special key such as tea.KeyEnter.
func KeyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// KeyCtrl creates a ctrl+<r> key press message.
func KeyCtrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: r, Mod: tea.ModCtrl})
}

// Type returns one key press per rune of s.
func Type(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			msgs = append(msgs, tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "}))
			continue
		}
		msgs = append(msgs, KeyPress(r))
	}
	return msgs
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.KeyPressMsg {
	return KeyCode(tea.KeyDown)
}

// KeyUp creates an up arrow key press message.
func KeyUp() tea.KeyPressMsg {
	return KeyCode(tea.KeyUp)
}

// KeyEnter creates an enter key press message.
func KeyEnter() tea.KeyPressMsg {
	return KeyCode(tea.KeyEnter)
}

// KeyEsc creates an escape key press message.
func KeyEsc() tea.KeyPressMsg {
	return KeyCode(tea.KeyEscape)
}

// KeyTab creates a tab key press message.
func KeyTab() tea.KeyPressMsg {
	return KeyCode(tea.KeyTab)
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
