// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Titles in lists, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane border

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection highlight inside the editor.
	SelectionBgColor = lipgloss.AdaptiveColor{Light: "#B3D4FC", Dark: "#264F78"}

	// Pane frames
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	PaneFocusedStyle = PaneStyle.
				BorderForeground(BorderFocusColor)

	// Title of the focused document
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextPrimaryColor).
			Bold(true).
			Padding(0, 1)

	// Status bar at the bottom
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Active style badges in the status bar ("B", "I", ...)
	StatusBadgeStyle = lipgloss.NewStyle().
				Foreground(StatusSuccessColor).
				Bold(true)

	// Unsaved-changes marker
	DirtyMarkerStyle = lipgloss.NewStyle().
				Foreground(StatusErrorColor).
				Bold(true)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)

// ApplyThemeMode forces light or dark rendering; empty keeps terminal
// detection.
func ApplyThemeMode(mode string) {
	switch mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}
