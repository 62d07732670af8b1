package table

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCentre
	AlignRight
)

// ParseAlignment falls back to left alignment for unknown values.
func ParseAlignment(s string) Alignment {
	switch s {
	case "centre":
		return AlignCentre
	case "right":
		return AlignRight
	}
	return AlignLeft
}

func (a Alignment) Markdown() string {
	switch a {
	case AlignCentre:
		return ":-:"
	case AlignRight:
		return "--:"
	}
	return ":--"
}

type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func ParseSortOrder(s string) SortOrder {
	if s == "descending" {
		return Descending
	}
	return Ascending
}

// Row is a CSV record addressed by column name.
type Row struct {
	header []string
	cells  []string
}

func NewRow(header, cells []string) Row {
	return Row{header: header, cells: cells}
}

func (r Row) Get(column string) (string, bool) {
	for i, name := range r.header {
		if name == column {
			if i < len(r.cells) {
				return r.cells[i], true
			}
			return "", true
		}
	}
	return "", false
}

// Data is the source table read from a CSV file with a header row.
type Data struct {
	Header []string
	Rows   []Row
}

func NewData(records [][]string) (Data, error) {
	if len(records) == 0 {
		return Data{}, fmt.Errorf("data has no header row")
	}
	data := Data{Header: records[0]}
	for _, record := range records[1:] {
		data.Rows = append(data.Rows, NewRow(data.Header, record))
	}
	return data, nil
}

// Sort orders rows by a column, case-insensitively. Equal rows keep their order.
func (d *Data) Sort(column string, order SortOrder) error {
	if !slices.Contains(d.Header, column) {
		return fmt.Errorf("unknown sort column %q", column)
	}
	key := func(row Row) string {
		value, _ := row.Get(column)
		return strings.ToLower(value)
	}
	sort.SliceStable(d.Rows, func(i, j int) bool {
		if order == Descending {
			return key(d.Rows[i]) > key(d.Rows[j])
		}
		return key(d.Rows[i]) < key(d.Rows[j])
	})
	return nil
}

func (d *Data) Filter(filter Filter) {
	rows := d.Rows[:0:0]
	for _, row := range d.Rows {
		if filter.Apply(row) {
			rows = append(rows, row)
		}
	}
	d.Rows = rows
}

// Table is a rendered Markdown table.
type Table struct {
	Header     []string
	Alignments []Alignment
	Rows       [][]string
}

func (t Table) String() string {
	var b strings.Builder
	writeRow(&b, t.Header)
	alignments := make([]string, len(t.Header))
	for i := range alignments {
		alignment := AlignLeft
		if i < len(t.Alignments) {
			alignment = t.Alignments[i]
		}
		alignments[i] = alignment.Markdown()
	}
	writeRow(&b, alignments)
	for _, row := range t.Rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

