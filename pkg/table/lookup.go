package table

import (
	"sheetstep/pkg/grid"
)

// Criterion is a column=value predicate evaluated against a decoded table.
type Criterion struct {
	Column string
	Value  grid.Cell
}

// Lookup scans records in row order for cells equal to the criterion
// value. Equality is exact, kind included. With all false only the first
// match is returned; with all true every match, preserving row order. No
// match yields an empty result, never an error.
func Lookup(records []Record, c Criterion, all bool) []Record {
	var matches []Record
	for _, rec := range records {
		cell, ok := rec.Fields[c.Column]
		if !ok || !cell.Equal(c.Value) {
			continue
		}
		matches = append(matches, rec)
		if !all {
			break
		}
	}
	return matches
}
