// Package table renders themed lipgloss tables for command output.
package table

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/deck/tui/theme"
)

// Builder provides a fluent interface for creating styled tables.
type Builder struct {
	table    *ltable.Table
	theme    *theme.Theme
	bordered bool
	muted    map[int]bool
}

// NewBuilder creates a bordered table using the default theme.
func NewBuilder() *Builder {
	return &Builder{
		table:    ltable.New(),
		theme:    theme.DefaultTheme,
		bordered: true,
		muted:    map[int]bool{},
	}
}

// WithTheme sets the theme.
func (b *Builder) WithTheme(t *theme.Theme) *Builder {
	b.theme = t
	return b
}

// WithBorder enables or disables the border.
func (b *Builder) WithBorder(bordered bool) *Builder {
	b.bordered = bordered
	return b
}

// WithMutedColumn renders column col in the muted style.
func (b *Builder) WithMutedColumn(col int) *Builder {
	b.muted[col] = true
	return b
}

// WithHeaders sets the table headers.
func (b *Builder) WithHeaders(headers ...string) *Builder {
	b.table = b.table.Headers(headers...)
	return b
}

// WithRows appends rows.
func (b *Builder) WithRows(rows ...[]string) *Builder {
	for _, row := range rows {
		b.table = b.table.Row(row...)
	}
	return b
}

// Build applies borders and styles and returns the table.
func (b *Builder) Build() *ltable.Table {
	t := b.theme
	if b.bordered {
		b.table = b.table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border))
	} else {
		b.table = b.table.Border(lipgloss.HiddenBorder())
	}

	// Header cells report row ltable.HeaderRow; data rows start at 0.
	b.table = b.table.StyleFunc(func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle().Padding(0, 1)
		if row == ltable.HeaderRow {
			return style.Bold(true).Foreground(t.Colors.Orange)
		}
		if b.muted[col] {
			return style.Foreground(t.Colors.MutedText)
		}
		return style
	})
	return b.table
}

// SimpleTable creates a basic table with headers and rows.
func SimpleTable(headers []string, rows [][]string) string {
	return NewBuilder().
		WithHeaders(headers...).
		WithRows(rows...).
		Build().
		String()
}

// StatusTable renders label/value pairs without a border.
func StatusTable(items [][]string) string {
	b := NewBuilder().WithBorder(false)
	for _, item := range items {
		if len(item) >= 2 {
			b.WithRows([]string{theme.DefaultTheme.Muted.Render(item[0] + ":"), item[1]})
		}
	}
	return b.Build().String()
}
