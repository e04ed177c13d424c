package styles

// Status glyphs. All are plain Unicode so no patched font is needed.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconPending = "◌"
	IconDelete  = "🗑"
	IconImage   = "▣"
	IconSkip    = "»"

	IconBullet = "▸"
)
