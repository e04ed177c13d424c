package styles

import "github.com/charmbracelet/lipgloss"

// Theme groups the composed styles.
var Theme = struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Accent  lipgloss.Style

	ListItem   lipgloss.Style
	ListBullet lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary),
	Heading: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText),
	Muted: lipgloss.NewStyle().
		Foreground(ColorTextMuted),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText),

	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Info:    lipgloss.NewStyle().Foreground(ColorInfo),
	Accent:  lipgloss.NewStyle().Foreground(ColorAccent),

	ListItem: lipgloss.NewStyle().
		Foreground(ColorText).
		PaddingLeft(2),
	ListBullet: lipgloss.NewStyle().
		Foreground(ColorPrimary),
}

// RenderListItem returns item prefixed with a bullet.
func RenderListItem(item string) string {
	return Theme.ListBullet.Render(IconBullet) + " " + Theme.ListItem.Render(item)
}

func RenderError(msg string) string {
	return Theme.Error.Render(IconError + " " + msg)
}

func RenderSuccess(msg string) string {
	return Theme.Success.Render(IconSuccess + " " + msg)
}

func RenderWarning(msg string) string {
	return Theme.Warning.Render(IconWarning + " " + msg)
}

func RenderInfo(msg string) string {
	return Theme.Info.Render(IconInfo + " " + msg)
}

// RenderOutcome styles a per-tag outcome label.
func RenderOutcome(outcome string) string {
	switch outcome {
	case "deleted":
		return Theme.Success.Render(IconDelete + " " + outcome)
	case "failed":
		return Theme.Error.Render(IconError + " " + outcome)
	case "skipped-dry-run":
		return Theme.Info.Render(IconPending + " " + outcome)
	case "skipped-already-handled":
		return Theme.Accent.Render(IconSkip + " " + outcome)
	default:
		return Theme.Muted.Render(outcome)
	}
}
