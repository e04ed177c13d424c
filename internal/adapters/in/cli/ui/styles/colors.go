// Package styles holds the terminal palette and composed styles used by the
// retention report.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	Green  = lipgloss.Color("#00ff88")
	Cyan   = lipgloss.Color("#00ccff")
	Violet = lipgloss.Color("#a78bfa")
	Red    = lipgloss.Color("#ff4444")
	Yellow = lipgloss.Color("#fbbf24")

	Gray200 = lipgloss.Color("#e5e5e5")
	Gray500 = lipgloss.Color("#737373")
	Gray700 = lipgloss.Color("#404040")

	ColorPrimary   = Green
	ColorSecondary = Cyan
	ColorAccent    = Violet
	ColorSuccess   = Green
	ColorWarning   = Yellow
	ColorError     = Red
	ColorInfo      = Cyan

	ColorText      = Gray200
	ColorTextMuted = Gray500
	ColorBorder    = Gray700
)
