package sheets

import (
	"fmt"
)

// ColumnName converts a 0-based column index into its A1 letter form:
// 0 -> A, 25 -> Z, 26 -> AA.
func ColumnName(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}

// RowSegment builds the A1 range for a contiguous run of columns within
// a single row. Row indices here are 0-based grid indices; A1 rows are
// 1-based.
func RowSegment(sheet string, row, startCol, endCol int) Range {
	a1 := fmt.Sprintf("%s%d:%s%d", ColumnName(startCol), row+1, ColumnName(endCol), row+1)
	return Range{Sheet: sheet, A1: a1}
}
