// Package report renders trajectory matrices as fixed-width text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/threebody/internal/dynamo"
)

// Table is a matrix of floats, one row per step. Every cell is printed
// with two decimals and right-aligned to the widest cell in its column.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]float64
}

// FormatMatrix renders rows with index labels and a divider between
// consecutive rows.
func FormatMatrix(rows [][]float64) string {
	return Table{Rows: rows}.String()
}

// TrajectoryTable lays out one body's history with x, y, z columns.
func TrajectoryTable(title string, t dynamo.Trajectory) Table {
	return Table{
		Title:   title,
		Columns: []string{"x", "y", "z"},
		Rows:    t.Matrix(),
	}
}

func (t Table) String() string {
	var b strings.Builder
	t.WriteTo(&b)
	return b.String()
}

// WriteTo writes the rendered table. Ragged rows are padded with blanks.
func (t Table) WriteTo(w io.Writer) (int64, error) {
	ncols := len(t.Columns)
	for _, r := range t.Rows {
		ncols = max(ncols, len(r))
	}

	cells := make([][]string, len(t.Rows))
	widths := make([]int, ncols)
	for c, name := range t.Columns {
		widths[c] = len(name)
	}
	for i, r := range t.Rows {
		cells[i] = make([]string, ncols)
		for c, v := range r {
			s := strconv.FormatFloat(v, 'f', 2, 64)
			cells[i][c] = s
			widths[c] = max(widths[c], len(s))
		}
	}

	labelWidth := len(strconv.Itoa(max(len(t.Rows)-1, 0)))

	line := func(label string, fields []string) string {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%*s |", labelWidth, label))
		for c, f := range fields {
			sb.WriteString(fmt.Sprintf(" %*s", widths[c], f))
		}
		return sb.String()
	}

	var out strings.Builder
	if t.Title != "" {
		out.WriteString(t.Title)
		out.WriteByte('\n')
	}

	if len(t.Columns) > 0 {
		header := make([]string, ncols)
		copy(header, t.Columns)
		h := line("", header)
		out.WriteString(h)
		out.WriteByte('\n')
		out.WriteString(strings.Repeat("=", len(h)))
		out.WriteByte('\n')
	}

	for i := range cells {
		row := line(strconv.Itoa(i), cells[i])
		if i > 0 {
			out.WriteString(strings.Repeat("-", len(row)))
			out.WriteByte('\n')
		}
		out.WriteString(row)
		out.WriteByte('\n')
	}

	n, err := io.WriteString(w, out.String())
	return int64(n), err
}
