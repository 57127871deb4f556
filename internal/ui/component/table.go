package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dexwatch/dexwatch/internal/ui/style"
)

// Column represents a column configuration
type Column struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// Row represents a row of data with an optional per-row style override
type Row struct {
	Cells []string
	Style *lipgloss.Style
}

// Table is a selectable data table component
type Table struct {
	columns     []Column
	rows        []Row
	width       int
	height      int
	selectedRow int

	headerStyle      lipgloss.Style
	rowStyle         lipgloss.Style
	selectedRowStyle lipgloss.Style
	borderStyle      lipgloss.Style

	showBorder bool
	selectable bool
}

// NewTable creates a new table component
func NewTable() *Table {
	palette := style.DefaultPalette()

	return &Table{
		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		selectedRowStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		showBorder: true,
		selectable: true,
	}
}

// AddColumn adds a column to the table
func (t *Table) AddColumn(header string, width int, align lipgloss.Position) *Table {
	t.columns = append(t.columns, Column{Header: header, Width: width, Align: align})
	return t
}

// SetRows replaces all rows, clamping the selection into range.
func (t *Table) SetRows(rows []Row) *Table {
	t.rows = rows
	if t.selectedRow >= len(rows) {
		t.selectedRow = len(rows) - 1
	}
	if t.selectedRow < 0 {
		t.selectedRow = 0
	}
	return t
}

// SetSize sets the table dimensions
func (t *Table) SetSize(width, height int) *Table {
	t.width = width
	t.height = height
	return t
}

// SetSelectable enables/disables row selection
func (t *Table) SetSelectable(selectable bool) *Table {
	t.selectable = selectable
	return t
}

// SetShowBorder enables/disables table border
func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

// SelectedRow returns the currently selected row index
func (t *Table) SelectedRow() int {
	return t.selectedRow
}

// SetSelectedRow sets the currently selected row
func (t *Table) SetSelectedRow(index int) *Table {
	if index >= 0 && index < len(t.rows) {
		t.selectedRow = index
	}
	return t
}

// MoveUp moves selection up
func (t *Table) MoveUp() *Table {
	if t.selectable && t.selectedRow > 0 {
		t.selectedRow--
	}
	return t
}

// MoveDown moves selection down
func (t *Table) MoveDown() *Table {
	if t.selectable && t.selectedRow < len(t.rows)-1 {
		t.selectedRow++
	}
	return t
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.rows)
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return ""
	}

	var content strings.Builder

	var headerRow strings.Builder
	for i, col := range t.columns {
		headerRow.WriteString(t.renderCell(col.Header, col.Width, col.Align, t.headerStyle))
		if i < len(t.columns)-1 {
			headerRow.WriteString("│")
		}
	}
	content.WriteString(headerRow.String())
	content.WriteString("\n")

	var separator strings.Builder
	for i, col := range t.columns {
		separator.WriteString(strings.Repeat("─", col.Width+2))
		if i < len(t.columns)-1 {
			separator.WriteString("┼")
		}
	}
	content.WriteString(separator.String())
	content.WriteString("\n")

	for rowIndex, row := range t.rows {
		rowStyle := t.rowStyle
		if row.Style != nil {
			rowStyle = *row.Style
		}
		if t.selectable && rowIndex == t.selectedRow {
			rowStyle = t.selectedRowStyle
		}

		var rowStr strings.Builder
		for i, col := range t.columns {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			rowStr.WriteString(t.renderCell(cell, col.Width, col.Align, rowStyle))
			if i < len(t.columns)-1 {
				rowStr.WriteString("│")
			}
		}

		content.WriteString(rowStr.String())
		if rowIndex < len(t.rows)-1 {
			content.WriteString("\n")
		}
	}

	result := content.String()
	if t.showBorder {
		result = t.borderStyle.Render(result)
	}
	return result
}

// renderCell renders a single table cell. Truncation counts runes, not bytes,
// so multibyte content is never sliced mid-character.
func (t *Table) renderCell(content string, width int, align lipgloss.Position, cellStyle lipgloss.Style) string {
	if runes := []rune(content); len(runes) > width {
		if width > 3 {
			content = string(runes[:width-3]) + "..."
		} else {
			content = string(runes[:width])
		}
	}
	return cellStyle.Width(width + 2).Align(align).Render(content)
}
