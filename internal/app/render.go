package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/ui/styles"
	"github.com/zjrosen/quill/internal/views"
)

// viewStyles holds the resolved lipgloss styles after theme overrides.
type viewStyles struct {
	gutter lipgloss.Style
	text   lipgloss.Style
	status lipgloss.Style
	notice lipgloss.Style

	cursorBlock     lipgloss.Style
	cursorBar       lipgloss.Style
	cursorUnderline lipgloss.Style
}

func newViewStyles(theme config.ThemeConfig) viewStyles {
	status := styles.Override(styles.StatusStyle, theme.StatusFg)
	notice := styles.Override(styles.NoticeStyle, theme.NoticeFg)
	if theme.StatusBg != "" {
		status = status.Background(lipgloss.Color(theme.StatusBg))
		notice = notice.Background(lipgloss.Color(theme.StatusBg))
	}
	return viewStyles{
		gutter: styles.Override(styles.GutterStyle, theme.Gutter),
		text:   styles.TextStyle,
		status: status,
		notice: notice,

		// The cursor is virtual: the cell under it is restyled rather
		// than moving the terminal cursor.
		cursorBlock:     lipgloss.NewStyle().Reverse(true),
		cursorBar:       lipgloss.NewStyle().Reverse(true).Blink(true),
		cursorUnderline: lipgloss.NewStyle().Underline(true),
	}
}

func (s viewStyles) cursor(cs views.CursorStyle) lipgloss.Style {
	switch cs {
	case views.StyleBar:
		return s.cursorBar
	case views.StyleUnderline:
		return s.cursorUnderline
	default:
		return s.cursorBlock
	}
}

// View implements tea.Model: the text grid rows followed by the status
// row, with the focused view's cursor overlaid.
func (m Model) View() string {
	if !m.ready || m.quitting {
		return ""
	}

	var b strings.Builder
	tCur := m.text.CursorPos()
	for r, row := range m.text.Grid() {
		cells := sanitizeRow(row)
		b.WriteString(m.styles.gutter.Render(string(cells[:views.GutterWidth])))

		content := cells[views.GutterWidth:]
		cursorCol := -1
		if m.textFocus && r == tCur.Row {
			cursorCol = tCur.Col - views.GutterWidth
		}
		b.WriteString(m.renderCells(content, cursorCol, m.text.Style(), m.styles.text))
		b.WriteByte('\n')
	}

	b.WriteString(m.renderStatusRow())
	return b.String()
}

// renderStatusRow paints the command view's single row, with the
// disk-change notice right-aligned when present.
func (m Model) renderStatusRow() string {
	grid := m.cmd.Grid()
	if len(grid) == 0 {
		return ""
	}
	cells := sanitizeRow(grid[0])

	notice := ""
	if m.diskChanged {
		notice = "[file changed on disk]"
		if len(notice) >= len(cells) {
			notice = ""
		} else {
			cells = cells[:len(cells)-len(notice)]
		}
	}

	cursorCol := -1
	if !m.textFocus {
		cursorCol = m.cmd.CursorPos().Col
	}
	row := m.renderCells(cells, cursorCol, m.cmd.Style(), m.styles.status)
	if notice != "" {
		row += m.styles.notice.Render(notice)
	}
	return row
}

// renderCells styles a run of cells, restyling the cursor cell when
// cursorCol addresses one.
func (m Model) renderCells(cells []rune, cursorCol int, cs views.CursorStyle, base lipgloss.Style) string {
	if cursorCol < 0 || cursorCol >= len(cells) {
		return base.Render(string(cells))
	}
	cur := m.styles.cursor(cs).Inherit(base)
	return base.Render(string(cells[:cursorCol])) +
		cur.Render(string(cells[cursorCol])) +
		base.Render(string(cells[cursorCol+1:]))
}

// sanitizeRow replaces cells that would not occupy exactly one terminal
// column, keeping the grid's column math exact.
func sanitizeRow(row []rune) []rune {
	out := make([]rune, len(row))
	for i, r := range row {
		switch {
		case r == '\t':
			out[i] = ' '
		case runewidth.RuneWidth(r) != 1:
			out[i] = '?'
		default:
			out[i] = r
		}
	}
	return out
}
