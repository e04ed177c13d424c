// Package components provides rendering helpers for the CLI report.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bnema/registry-cli/internal/adapters/in/cli/ui/styles"
)

// Column is a table column. Width 0 means unbounded.
type Column struct {
	Title string
	Width int
}

// Table renders rows under a bordered header.
type Table struct {
	columns     []Column
	rows        [][]string
	border      lipgloss.Border
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// TableOption configures a Table.
type TableOption func(*Table)

// NewTable creates a table with the default report styling.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		border:      lipgloss.RoundedBorder(),
		borderStyle: lipgloss.NewStyle().Foreground(styles.ColorBorder),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorPrimary).
			Padding(0, 1),
		cellStyle: lipgloss.NewStyle().
			Foreground(styles.ColorText).
			Padding(0, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func WithColumns(cols ...Column) TableOption {
	return func(t *Table) { t.columns = cols }
}

func WithRows(rows [][]string) TableOption {
	return func(t *Table) { t.rows = rows }
}

func WithBorder(b lipgloss.Border) TableOption {
	return func(t *Table) { t.border = b }
}

// WithPlainStyle drops colors and padding, mostly for tests.
func WithPlainStyle() TableOption {
	return func(t *Table) {
		t.headerStyle = lipgloss.NewStyle()
		t.cellStyle = lipgloss.NewStyle()
		t.borderStyle = lipgloss.NewStyle()
	}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render renders the table. A table without columns renders empty.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = truncateCell(col.Title, col.Width)
	}

	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		rows[r] = make([]string, len(row))
		for c, cell := range row {
			rows[r][c] = truncateCell(cell, t.width(c))
		}
	}

	return table.New().
		Border(t.border).
		BorderStyle(t.borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.cellStyle
			if row == table.HeaderRow {
				s = t.headerStyle
			}
			if w := t.width(col); w > 0 {
				s = s.Width(w).MaxWidth(w)
			}
			return s
		}).
		String()
}

func (t *Table) width(col int) int {
	if col < 0 || col >= len(t.columns) {
		return 0
	}
	return t.columns[col].Width
}

// truncateCell shortens value to maxWidth display cells, ending in "...".
// Pre-styled values are left alone.
func truncateCell(value string, maxWidth int) string {
	if strings.Contains(value, "\x1b[") {
		return value
	}
	if maxWidth <= 0 || runewidth.StringWidth(value) <= maxWidth {
		return value
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	target := maxWidth - 3
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if width+w > target {
			break
		}
		b.WriteString(cluster)
		width += w
	}
	if b.Len() == 0 {
		return strings.Repeat(".", maxWidth)
	}
	return b.String() + "..."
}

// SummaryTable renders the per-repository summary of a run.
func SummaryTable(rows [][]string, opts ...TableOption) string {
	opts = append([]TableOption{
		WithColumns(
			Column{Title: "Repository", Width: 40},
			Column{Title: "Tags"},
			Column{Title: "Kept"},
			Column{Title: "Candidates"},
			Column{Title: "Deleted"},
			Column{Title: "Failed"},
			Column{Title: "Unresolved"},
		),
		WithRows(rows),
	}, opts...)
	return NewTable(opts...).Render()
}
