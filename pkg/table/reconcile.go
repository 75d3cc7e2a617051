package table

import (
	"strconv"

	"sheetstep/pkg/grid"
)

// Update is a row-scoped partial write: the absolute grid row index and
// the cells to overwrite, keyed by column index. Columns not mentioned
// are left untouched in the sheet.
type Update struct {
	Row   int
	Cells map[int]grid.Cell
}

// Reconcile matches incoming records against the existing table by the
// key field and produces one Update per matched record. The first row in
// sheet order whose key cell equals the incoming key wins; later rows
// with a duplicate key are never touched by the same incoming record.
// Incoming records with no match, or without the key field at all, are
// returned as unmatched for the caller's policy to handle. Fields the
// header does not name are dropped from the update.
func Reconcile(existing []Record, header Header, incoming []Fields, keyField string) (updates []Update, unmatched []Fields) {
	byKey := make(map[string]Record, len(existing))
	for _, rec := range existing {
		cell, ok := rec.Fields[keyField]
		if !ok {
			continue
		}
		k := cellKey(cell)
		if _, seen := byKey[k]; !seen {
			byKey[k] = rec
		}
	}

	for _, rec := range incoming {
		keyCell, ok := rec[keyField]
		if !ok {
			unmatched = append(unmatched, rec)
			continue
		}
		target, ok := byKey[cellKey(keyCell)]
		if !ok {
			unmatched = append(unmatched, rec)
			continue
		}
		cells := make(map[int]grid.Cell, len(rec))
		for name, cell := range rec {
			if name == keyField {
				continue
			}
			col, ok := header.Index(name)
			if !ok {
				continue
			}
			cells[col] = cell
		}
		if len(cells) == 0 {
			continue
		}
		updates = append(updates, Update{Row: target.Row, Cells: cells})
	}
	return updates, unmatched
}

// cellKey encodes a cell for map lookup such that two cells collide
// exactly when Cell.Equal holds.
func cellKey(c grid.Cell) string {
	if c.IsEmpty() {
		return "e:"
	}
	if c.Kind() == grid.KindNumber {
		return "n:" + strconv.FormatFloat(c.Float(), 'b', -1, 64)
	}
	return "t:" + c.String()
}
