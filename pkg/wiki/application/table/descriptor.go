package table

import (
	"fmt"
	"sort"
	"strings"
)

// Descriptor describes a generated table. It lives in an HTML comment that ends on Line.
type Descriptor struct {
	Line    int
	Name    string
	Version string

	DataPath   string
	Header     []string
	Alignments []Alignment
	Formats    []Format
	Filter     *Filter

	SortBy    string
	SortOrder SortOrder

	SplitBy           string
	SplitSorted       bool
	SplitOrder        SortOrder
	SplitPrefixFormat *Format
}

func (d Descriptor) IsSplit() bool {
	return d.SplitBy != ""
}

// Render builds the Markdown for a descriptor from its data.
func Render(descriptor Descriptor, data Data) (string, error) {
	if len(descriptor.Formats) < len(descriptor.Header) {
		return "", fmt.Errorf(
			"%v %v: %d formats for %d columns",
			descriptor.Name, descriptor.Version, len(descriptor.Formats), len(descriptor.Header),
		)
	}
	if descriptor.SortBy != "" {
		if err := data.Sort(descriptor.SortBy, descriptor.SortOrder); err != nil {
			return "", err
		}
	}
	if descriptor.Filter != nil {
		data.Filter(*descriptor.Filter)
	}

	if !descriptor.IsSplit() {
		t := newTable(descriptor)
		for _, row := range data.Rows {
			t.Rows = append(t.Rows, formatRow(descriptor, row))
		}
		return t.String(), nil
	}

	type group struct {
		key    string
		prefix string
		table  Table
	}
	var groups []*group
	byKey := make(map[string]*group)
	for _, row := range data.Rows {
		key, _ := row.Get(descriptor.SplitBy)
		if key == "" {
			continue
		}
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key, table: newTable(descriptor)}
			if descriptor.SplitPrefixFormat != nil {
				g.prefix = descriptor.SplitPrefixFormat.Apply(row)
			}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.table.Rows = append(g.table.Rows, formatRow(descriptor, row))
	}

	if descriptor.SplitSorted {
		sort.SliceStable(groups, func(i, j int) bool {
			a, b := strings.ToLower(groups[i].key), strings.ToLower(groups[j].key)
			if descriptor.SplitOrder == Descending {
				return a > b
			}
			return a < b
		})
	}

	var parts []string
	for _, g := range groups {
		if g.prefix != "" {
			parts = append(parts, g.prefix)
		}
		parts = append(parts, strings.TrimSpace(g.table.String()))
	}
	return strings.Join(parts, "\n\n"), nil
}

func newTable(descriptor Descriptor) Table {
	return Table{Header: descriptor.Header, Alignments: descriptor.Alignments}
}

func formatRow(descriptor Descriptor, row Row) []string {
	cells := make([]string, len(descriptor.Header))
	for i := range cells {
		cells[i] = strings.TrimSpace(descriptor.Formats[i].Apply(row))
	}
	return cells
}
