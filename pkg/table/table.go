package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	headStyle   = color.New(color.FgCyan, color.Bold)
	borderStyle = color.New(color.FgHiBlack)
)

// Table renders rows inside a box drawn with Unicode line characters.
// Columns with a fixed width truncate longer cells with an ellipsis.
type Table struct {
	head   []string
	widths []int
	rows   [][]string
}

// New creates a table with the given header. widths may be nil or shorter
// than head; missing widths are computed from content.
func New(head []string, widths []int) *Table {
	return &Table{head: head, widths: widths}
}

// Append adds a row. Cells beyond the header length are dropped.
func (t *Table) Append(cells ...interface{}) {
	row := make([]string, len(t.head))
	for i := range row {
		if i < len(cells) {
			row[i] = fmt.Sprint(cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// columnWidths returns inner widths: fixed widths exclude one space of
// padding on each side.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.head))
	for i := range widths {
		if i < len(t.widths) && t.widths[i] > 2 {
			widths[i] = t.widths[i] - 2
			continue
		}
		widths[i] = runewidth.StringWidth(t.head[i])
		for _, row := range t.rows {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func line(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		b.WriteString(strings.Repeat("─", w+2))
		if i < len(widths)-1 {
			b.WriteString(mid)
		}
	}
	b.WriteString(right)
	return borderStyle.Sprint(b.String())
}

func cell(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "…")
	}
	return runewidth.FillRight(s, w)
}

func (t *Table) row(cells []string, widths []int, style *color.Color) string {
	sep := borderStyle.Sprint("│")
	var b strings.Builder
	b.WriteString(sep)
	for i, w := range widths {
		c := cell(cells[i], w)
		if style != nil {
			c = style.Sprint(c)
		}
		b.WriteString(" " + c + " ")
		b.WriteString(sep)
	}
	return b.String()
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	widths := t.columnWidths()
	lines := []string{
		line(widths, "┌", "┬", "┐"),
		t.row(t.head, widths, headStyle),
		line(widths, "├", "┼", "┤"),
	}
	for i, r := range t.rows {
		lines = append(lines, t.row(r, widths, nil))
		if i < len(t.rows)-1 {
			lines = append(lines, line(widths, "├", "┼", "┤"))
		}
	}
	lines = append(lines, line(widths, "└", "┴", "┘"))

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// String renders the table into a string.
func (t *Table) String() string {
	var b strings.Builder
	_ = t.Render(&b)
	return b.String()
}
