package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ajxudir/hubfilter/pkg/inventory"
	"github.com/ajxudir/hubfilter/pkg/software"
	"github.com/ajxudir/hubfilter/pkg/utils"
)

// Column represents a single table column with its header and current width.
type Column struct {
	Header string
	Width  int
}

// Table provides a table formatter with dynamic column widths and
// Unicode-aware width calculations.
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates a new table formatter with a two-space separator.
//
// Returns:
//   - *Table: A new table instance ready for column configuration
func NewTable() *Table {
	return &Table{separator: "  "}
}

// AddColumn adds a column with the given header and returns the table.
//
// The initial width is the display width of the header.
//
// Parameters:
//   - header: The text to display in the column header
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  utils.DisplayWidth(header),
	})
	return t
}

// UpdateWidths grows column widths to fit a row of values and returns the table.
//
// Parameters:
//   - values: Variable number of strings representing a data row
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i < len(t.columns) {
			t.columns[i].Width = utils.Max(t.columns[i].Width, utils.DisplayWidth(val))
		}
	}
	return t
}

// HeaderRow returns the formatted header row string.
//
// Returns:
//   - string: Formatted header row with columns separated by the separator
func (t *Table) HeaderRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = utils.ToWidth(col.Header, col.Width)
	}
	return strings.Join(parts, t.separator)
}

// SeparatorRow returns a separator row with dashes matching column widths.
//
// Returns:
//   - string: Formatted separator row
func (t *Table) SeparatorRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = strings.Repeat("-", col.Width)
	}
	return strings.Join(parts, t.separator)
}

// FormatRow formats a data row with proper padding for each column.
//
// Missing values are treated as empty strings.
//
// Parameters:
//   - values: Variable number of strings representing the row data
//
// Returns:
//   - string: Formatted row with values separated by the separator
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts[i] = utils.ToWidth(val, col.Width)
	}
	return strings.Join(parts, t.separator)
}

// PrintSummary renders the per-namespace run summary table.
//
// One row per namespace shows the unfiltered repository count, the number of
// repositories that survived filtering, and their total surviving tag count.
//
// Parameters:
//   - w: Destination writer
//   - inv: The inventory pass result
//   - agg: The aggregated result
//
// Returns:
//   - None
func PrintSummary(w io.Writer, inv *inventory.Result, agg *software.Result) {
	allowed := make(map[string]int)
	tags := make(map[string]int)
	for _, entry := range agg.Allowed {
		allowed[entry.Namespace]++
		tags[entry.Namespace] += len(entry.Tags)
	}

	table := NewTable().
		AddColumn("NAMESPACE").
		AddColumn("REPOS").
		AddColumn("ALLOWED").
		AddColumn("TAGS")

	rows := make([][]string, 0, len(inv.AllRepos))
	for _, ns := range inv.AllRepos {
		row := []string{
			ns.Namespace,
			strconv.Itoa(len(ns.Repos)),
			strconv.Itoa(allowed[ns.Namespace]),
			strconv.Itoa(tags[ns.Namespace]),
		}
		table.UpdateWidths(row...)
		rows = append(rows, row)
	}

	fmt.Fprintln(w, table.HeaderRow())
	fmt.Fprintln(w, table.SeparatorRow())
	for _, row := range rows {
		fmt.Fprintln(w, table.FormatRow(row...))
	}
}
