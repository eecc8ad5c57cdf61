// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - text view
	GutterColor      = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Line numbers
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Buffer content

	// Semantic color names - status line
	StatusTextColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#D9DCCF"} // Mode indicator, command text
	StatusBgColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#2D3436"} // Status row background

	// Semantic color names - notices
	NoticeColor = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FECA57"} // "changed on disk" warning

	// GutterStyle renders the five-column line number gutter.
	GutterStyle = lipgloss.NewStyle().Foreground(GutterColor)

	// TextStyle renders buffer content cells.
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)

	// StatusStyle renders the status/command row.
	StatusStyle = lipgloss.NewStyle().
			Foreground(StatusTextColor).
			Background(StatusBgColor)

	// NoticeStyle renders right-aligned status notices.
	NoticeStyle = lipgloss.NewStyle().
			Foreground(NoticeColor).
			Background(StatusBgColor).
			Bold(true)
)

// Override replaces a style's foreground when a non-empty hex color is
// configured. Invalid values are passed through to lipgloss unchanged; it
// degrades to no color rather than failing.
func Override(base lipgloss.Style, hex string) lipgloss.Style {
	if hex == "" {
		return base
	}
	return base.Foreground(lipgloss.Color(hex))
}
