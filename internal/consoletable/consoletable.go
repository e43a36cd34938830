// Package consoletable prints formatted tables on the console.
package consoletable

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	defaultMargin      = 2
	defaultIndentation = 4
)

// ConsoleTable prints formatted tables on the console.
type ConsoleTable struct {
	// Margin between columns
	Margin int
	// Indentation of the first column
	Indentation int
	// Target for output
	Target io.Writer

	cells   [][]any
	columns int
	title   string
}

// New returns a new console table with the given header row.
func New(title string, header ...string) ConsoleTable {
	t := ConsoleTable{
		Margin:      defaultMargin,
		Indentation: defaultIndentation,
		Target:      os.Stdout,
		columns:     len(header),
		cells:       make([][]any, 0),
		title:       title,
	}
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	t.cells = append(t.cells, row)
	return t
}

// AddRow adds a row to the table.
func (t *ConsoleTable) AddRow(r ...any) {
	if len(r) != t.columns {
		panic(fmt.Sprintf("added rows need to have %d columns", t.columns))
	}
	t.cells = append(t.cells, r)
}

// Print prints the table on the console.
func (t *ConsoleTable) Print() {
	fmt.Fprintf(t.Target, "%s:\n\n", t.title)
	cols := make([]int, t.columns)
	for _, row := range t.cells {
		for i, v := range row {
			cols[i] = max(cols[i], len(renderCell(v)))
		}
	}
	margin := strings.Repeat(" ", t.Margin)
	printRow := func(row []any) {
		fmt.Fprint(t.Target, strings.Repeat(" ", t.Indentation))
		for i, v := range row {
			if _, ok := v.(int); ok {
				fmt.Fprintf(t.Target, "%*s%s", cols[i], renderCell(v), margin)
			} else {
				fmt.Fprintf(t.Target, "%-*s%s", cols[i], renderCell(v), margin)
			}
		}
		fmt.Fprintln(t.Target)
	}
	printRow(t.cells[0])
	h := make([]any, t.columns)
	for i := range h {
		h[i] = strings.Repeat("-", cols[i])
	}
	printRow(h)
	for _, row := range t.cells[1:] {
		printRow(row)
	}
}

func renderCell(v any) string {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return "-"
		}
		return humanize.Time(x)
	case int:
		return humanize.Comma(int64(x))
	case nil:
		return "-"
	default:
		return fmt.Sprint(v)
	}
}
