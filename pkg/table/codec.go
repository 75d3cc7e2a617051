package table

import (
	"sort"

	"sheetstep/pkg/grid"
)

// Header maps column positions to field names.
type Header []string

// Index returns the column index for a field name. When the same name
// appears more than once in the header, the last column wins.
func (h Header) Index(name string) (int, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i] == name {
			return i, true
		}
	}
	return 0, false
}

func (h Header) Clone() Header {
	out := make(Header, len(h))
	copy(out, h)
	return out
}

// Fields holds a record's named cell values.
type Fields map[string]grid.Cell

// Record is a row projected into named fields. Row is the absolute grid
// row index the record was decoded from, used for targeted updates.
type Record struct {
	Row    int
	Fields Fields
}

// HeaderAt reads the header row out of a grid. A key row beyond the grid
// yields an empty header.
func HeaderAt(g grid.Grid, keyRow int) Header {
	if keyRow < 0 || keyRow >= len(g) {
		return nil
	}
	row := g[keyRow]
	h := make(Header, len(row))
	for i, c := range row {
		h[i] = c.String()
	}
	return h
}

// Decode converts a grid into records using the header at keyRow. Every
// row at index >= dataStart becomes one record, including fully empty
// rows. Columns the header does not name are ignored; columns a short
// row does not reach are omitted from the record rather than set empty.
func Decode(g grid.Grid, keyRow, dataStart int) []Record {
	header := HeaderAt(g, keyRow)
	if dataStart < 0 {
		dataStart = 0
	}
	var records []Record
	for i := dataStart; i < len(g); i++ {
		row := g[i]
		fields := make(Fields)
		for col, name := range header {
			if name == "" || col >= len(row) {
				continue
			}
			fields[name] = row[col]
		}
		records = append(records, Record{Row: i, Fields: fields})
	}
	return records
}

// Encode projects records onto the header's column order, producing the
// rows to append. Fields the header does not name are not dropped: the
// header grows by trailing columns in first-seen order, and the grown
// header is returned so the caller can rewrite the header row. Cells a
// record does not supply are emitted empty.
func Encode(records []Fields, header Header) (grid.Grid, Header) {
	grown := header.Clone()
	for _, rec := range records {
		for _, name := range sortedNewFields(rec, grown) {
			grown = append(grown, name)
		}
	}
	rows := make(grid.Grid, len(records))
	for i, rec := range records {
		row := make(grid.Row, len(grown))
		for col, name := range grown {
			if c, ok := rec[name]; ok {
				row[col] = c
			} else {
				row[col] = grid.Empty()
			}
		}
		rows[i] = row
	}
	return rows, grown
}

// sortedNewFields lists the fields of rec that header does not name yet,
// in a deterministic order.
func sortedNewFields(rec Fields, header Header) []string {
	known := make(map[string]bool, len(header))
	for _, name := range header {
		known[name] = true
	}
	var names []string
	for name := range rec {
		if !known[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
