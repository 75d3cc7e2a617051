package grid

import (
	"errors"
	"fmt"
)

// ErrShape is returned when raw-mode input is not a two-dimensional
// grid of cell values.
var ErrShape = errors.New("values must be a two-dimensional grid")

// FromRaw validates a raw-mode value block and converts it into a Grid.
// Each element must itself be a row; ragged rows are legal, nested
// structures inside a cell are not.
func FromRaw(v interface{}) (Grid, error) {
	rows, ok := v.([]interface{})
	if !ok {
		if g, ok := v.([][]interface{}); ok {
			return FromValues(g), nil
		}
		return nil, ErrShape
	}
	g := make(Grid, len(rows))
	for i, rv := range rows {
		cells, ok := rv.([]interface{})
		if !ok {
			return nil, fmt.Errorf("row %d: %w", i, ErrShape)
		}
		r := make(Row, len(cells))
		for j, cv := range cells {
			switch cv.(type) {
			case []interface{}, map[string]interface{}:
				return nil, fmt.Errorf("row %d col %d: %w", i, j, ErrShape)
			}
			r[j] = FromValue(cv)
		}
		g[i] = r
	}
	return g, nil
}
