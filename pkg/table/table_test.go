package table

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestTable_FixedWidths(t *testing.T) {
	a := assert.New(t)
	tb := New([]string{"ID", "Folder Name"}, []int{5, 12})
	tb.Append(1, "Work")
	tb.Append(2, "A very long folder name")

	out := tb.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	a.Len(lines, 7)
	for _, l := range lines {
		a.Equal(runewidth.StringWidth(lines[0]), runewidth.StringWidth(l), l)
	}
	a.Contains(out, "│ Work       │")
	a.Contains(out, "A very lo…")
	a.Equal(2, tb.Len())
}

func TestTable_AutoWidths(t *testing.T) {
	tb := New([]string{"Command", "Description"}, nil)
	tb.Append("help", "Display all commands")

	out := tb.String()
	assert.True(t, strings.HasPrefix(out, "┌─────────┬"))
	assert.Contains(t, out, "│ help    │ Display all commands │")
}

func TestTable_MissingCells(t *testing.T) {
	tb := New([]string{"A", "B"}, nil)
	tb.Append("only")
	assert.Contains(t, tb.String(), "│ only │   │")
}
