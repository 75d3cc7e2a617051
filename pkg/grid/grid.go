package grid

// Row is an ordered sequence of cells. Rows in a Grid may have unequal
// length; the spreadsheet service trims trailing blanks when reading.
type Row []Cell

// Grid is raw rectangular cell data: an ordered sequence of rows.
type Grid []Row

// Cell returns the cell at (row, col), tolerating ragged input. The
// second return is false when the position falls outside the data.
func (g Grid) Cell(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g) {
		return Empty(), false
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return Empty(), false
	}
	return r[col], true
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// FromValues converts the Sheets API value matrix into a Grid.
func FromValues(values [][]interface{}) Grid {
	g := make(Grid, len(values))
	for i, row := range values {
		r := make(Row, len(row))
		for j, v := range row {
			r[j] = FromValue(v)
		}
		g[i] = r
	}
	return g
}

// Values converts a Grid back into the matrix form the Sheets API expects.
func (g Grid) Values() [][]interface{} {
	values := make([][]interface{}, len(g))
	for i, row := range g {
		vs := make([]interface{}, len(row))
		for j, c := range row {
			vs[j] = c.Value()
		}
		values[i] = vs
	}
	return values
}
