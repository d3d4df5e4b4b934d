package deckui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/deck/catalog"
	"github.com/grovetools/deck/tui/theme"
	"github.com/grovetools/deck/workspace"
)

const sidebarWidth = 34

// View renders the composer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width < 60 || m.height < 12 {
		return "Terminal too small. Please resize."
	}

	t := theme.DefaultTheme
	if m.prompt != nil {
		return m.renderPrompt(t)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Colors.Orange).
		Render(m.title)

	bodyHeight := m.height - 6
	sidebar := m.renderSidebar(t, bodyHeight)
	grid := m.renderWorkspace(t, m.width-sidebarWidth-4, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", grid)

	parts := []string{header, body}
	if line := m.renderTicker(t); line != "" {
		parts = append(parts, line)
	}
	if m.status != "" {
		parts = append(parts, t.Info.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderSidebar(t *theme.Theme, height int) string {
	var b strings.Builder

	b.WriteString(t.Bold.Render("Category: "))
	b.WriteString(t.Accent.Render(m.snap.Category))
	b.WriteString("\n")
	if m.filter.Focused() || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(t.Placeholder.Render("/ filter by name"))
	}
	b.WriteString("\n\n")

	rows := height - 6
	if rows < 1 {
		rows = 1
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	if len(m.snap.Visible) == 0 {
		b.WriteString(t.Muted.Render("No matches"))
		b.WriteString("\n")
	}
	for i := start; i < len(m.snap.Visible) && i < start+rows; i++ {
		b.WriteString(m.renderRow(t, i, m.snap.Visible[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.Muted.Render(m.pageLine()))

	style := t.Box.Width(sidebarWidth - 2)
	if m.pane == paneCatalog {
		style = style.BorderForeground(t.Colors.Orange)
	}
	return style.Render(b.String())
}

func (m *Model) renderRow(t *theme.Theme, i int, item catalog.Item) string {
	marker := "  "
	switch {
	case item.ID == m.snap.Armed:
		marker = t.Highlight.Render("⇢ ")
	case m.inWorkspace(item.ID):
		marker = t.Success.Render("✓ ")
	}
	name := item.Name
	if i == m.cursor && m.pane == paneCatalog {
		return marker + t.Selected.Render(name)
	}
	return marker + name
}

func (m *Model) inWorkspace(id string) bool {
	for _, item := range m.snap.Workspace {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (m *Model) pageLine() string {
	if m.snap.Total == 0 {
		return "0 items"
	}
	line := fmt.Sprintf("%d-%d of %d", m.snap.First, m.snap.Last, m.snap.Total)
	if m.snap.HasPrev {
		line = "◀ " + line
	}
	if m.snap.HasNext {
		line += " ▶"
	}
	return line
}

func (m *Model) renderWorkspace(t *theme.Theme, width, height int) string {
	frame := t.Box
	if m.snap.Armed != "" {
		frame = t.DropZone.Padding(0, 1)
	} else if m.pane == paneWorkspace {
		frame = frame.BorderForeground(t.Colors.Orange)
	}
	frame = frame.Width(width).Height(height)

	if m.snap.Grid == nil {
		hint := "Drag items here: space to pick one up, enter to drop it."
		if m.snap.Armed != "" {
			hint = "Drop here with enter."
		}
		return frame.Render(lipgloss.Place(width-2, height-2, lipgloss.Center, lipgloss.Center, t.Muted.Render(hint)))
	}

	return frame.Render(m.renderGrid(t, *m.snap.Grid, width-2, height-2))
}

func (m *Model) renderGrid(t *theme.Theme, grid workspace.Grid, width, height int) string {
	tileW := width/grid.Columns - 2
	if tileW < 8 {
		tileW = 8
	}
	tileH := height/grid.Rows - 2
	if tileH < 1 {
		tileH = 1
	}

	rows := make([][]string, grid.Rows)
	for i, item := range m.snap.Workspace {
		_, row := grid.Position(i)
		style := t.Tile.Width(tileW).Height(tileH)
		if m.pane == paneWorkspace && i == m.tile {
			style = style.BorderForeground(t.Colors.Orange)
		}
		accent := t.AccentColors[i%len(t.AccentColors)]
		content := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(item.Name) +
			"\n" + t.Muted.Render(item.Category)
		rows[row] = append(rows[row], style.Render(content))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, r...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderTicker(t *theme.Theme) string {
	if len(m.quotes) == 0 {
		return ""
	}
	parts := make([]string, len(m.quotes))
	for i, q := range m.quotes {
		style := t.Down
		if q.IsUp() {
			style = t.Up
		}
		parts[i] = style.Render(q.String())
	}
	return strings.Join(parts, "   ")
}

func (m *Model) renderPrompt(t *theme.Theme) string {
	body := m.prompt.Message + "\n\n" +
		t.Success.Render("[y] yes") + "   " + t.Error.Render("[n] no")
	modal := t.Modal.Width(50).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
