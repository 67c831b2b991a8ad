// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// ColorCompleted is the foreground for completed rows, a blend of the muted
// and success colors of the active palette.
var ColorCompleted color.Color

// Style exports.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	DividerStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Task rows.
	TaskActiveStyle    lipgloss.Style
	TaskCompletedStyle lipgloss.Style
	TaskCursorStyle    lipgloss.Style
	TaskEditingStyle   lipgloss.Style
	CheckboxStyle      lipgloss.Style
	CheckboxDoneStyle  lipgloss.Style
	PlaceholderStyle   lipgloss.Style

	// Filter tabs.
	FilterSelectedStyle lipgloss.Style
	FilterNormalStyle   lipgloss.Style

	// Footer.
	RemainingStyle lipgloss.Style
	StatusErrStyle lipgloss.Style

	// Input fields.
	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p
	ColorCompleted = Blend(p.Muted, p.Success, 0.35)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	TaskActiveStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	TaskCompletedStyle = lipgloss.NewStyle().
		Foreground(ColorCompleted).
		Strikethrough(true)
	TaskCursorStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	TaskEditingStyle = lipgloss.NewStyle().
		Foreground(p.Warning)
	CheckboxStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	CheckboxDoneStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	FilterSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Underline(true)
	FilterNormalStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	RemainingStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	StatusErrStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Muted).
		PaddingLeft(1)
	InputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Primary).
		PaddingLeft(1)
}

// Blend mixes a toward b by t (0..1) in Lab space. If either color can't be
// converted, a is returned unchanged.
func Blend(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return a
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
