package xlsx

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sheetstep/pkg/grid"
	"sheetstep/pkg/sheets"

	"github.com/xuri/excelize/v2"
)

// Backend implements the sheets.Service contract against a local .xlsx
// file, for offline runs and development. Value input and render modes
// are accepted but have no local meaning; cells that parse as numbers
// are decoded as numbers.
type Backend struct {
	path string
}

func NewBackend(path string) *Backend {
	return &Backend{path: path}
}

func (b *Backend) FetchGrid(_ context.Context, rng sheets.Range, _ sheets.ValueRenderMode) (grid.Grid, bool, error) {
	f, err := excelize.OpenFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName(f, rng))
	if err != nil {
		return nil, false, err
	}
	g := decodeRows(rows)
	g = clip(g, rng.A1)
	if len(g) == 0 {
		return nil, false, nil
	}
	return g, true, nil
}

func (b *Backend) WriteGrid(_ context.Context, rng sheets.Range, g grid.Grid, _ sheets.ValueInputMode) error {
	f, err := b.open()
	if err != nil {
		return err
	}
	defer f.Close()

	startCol, startRow := origin(rng.A1)
	if err := setCells(f, sheetName(f, rng), startCol, startRow, g); err != nil {
		return err
	}
	return f.SaveAs(b.path)
}

func (b *Backend) AppendGrid(_ context.Context, rng sheets.Range, g grid.Grid, _ sheets.ValueInputMode) error {
	f, err := b.open()
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := sheetName(f, rng)
	existing, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	if err := setCells(f, sheet, 0, len(existing), g); err != nil {
		return err
	}
	return f.SaveAs(b.path)
}

func (b *Backend) ClearRange(_ context.Context, rng sheets.Range) error {
	f, err := excelize.OpenFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sheet := sheetName(f, rng)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	for r, row := range rows {
		for c := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, nil); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(b.path)
}

func (b *Backend) BatchWrite(ctx context.Context, writes []sheets.RangeGrid, input sheets.ValueInputMode) error {
	f, err := b.open()
	if err != nil {
		return err
	}
	defer f.Close()

	for _, w := range writes {
		startCol, startRow := origin(w.Range.A1)
		if err := setCells(f, sheetName(f, w.Range), startCol, startRow, w.Grid); err != nil {
			return err
		}
	}
	return f.SaveAs(b.path)
}

func (b *Backend) EnsureSheetExists(_ context.Context, sheet string) error {
	if sheet == "" {
		return nil
	}
	f, err := b.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx >= 0 {
		return err
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	return f.SaveAs(b.path)
}

func (b *Backend) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(b.path)
	if err == nil {
		return f, nil
	}
	if os.IsNotExist(err) {
		return excelize.NewFile(), nil
	}
	return nil, err
}

func sheetName(f *excelize.File, rng sheets.Range) string {
	if rng.Sheet != "" {
		if idx, err := f.GetSheetIndex(rng.Sheet); err == nil && idx < 0 {
			_, _ = f.NewSheet(rng.Sheet)
		}
		return rng.Sheet
	}
	return f.GetSheetName(0)
}

func setCells(f *excelize.File, sheet string, startCol, startRow int, g grid.Grid) error {
	for r, row := range g {
		for c, cell := range row {
			name, err := excelize.CoordinatesToCellName(startCol+c+1, startRow+r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, name, cell.Value()); err != nil {
				return fmt.Errorf("set %s!%s: %w", sheet, name, err)
			}
		}
	}
	return nil
}

func decodeRows(rows [][]string) grid.Grid {
	g := make(grid.Grid, len(rows))
	for i, row := range rows {
		r := make(grid.Row, len(row))
		for j, s := range row {
			r[j] = decodeCell(s)
		}
		g[i] = r
	}
	return g
}

func decodeCell(s string) grid.Cell {
	if s == "" {
		return grid.Empty()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return grid.Number(f)
	}
	return grid.Text(s)
}

// origin resolves the top-left corner of an A1 address to 0-based
// coordinates. Addresses that do not pin a corner start at A1.
func origin(a1 string) (col, row int) {
	corner := a1
	if i := strings.IndexByte(corner, ':'); i >= 0 {
		corner = corner[:i]
	}
	if corner == "" {
		return 0, 0
	}
	c, r, err := excelize.CellNameToCoordinates(corner)
	if err != nil {
		return 0, 0
	}
	return c - 1, r - 1
}

// clip restricts a whole-sheet grid to the rows and columns an A1 range
// addresses. Open-ended or unparseable ranges leave the grid as is.
func clip(g grid.Grid, a1 string) grid.Grid {
	i := strings.IndexByte(a1, ':')
	if i < 0 {
		return g
	}
	c1, r1, err1 := excelize.CellNameToCoordinates(a1[:i])
	c2, r2, err2 := excelize.CellNameToCoordinates(a1[i+1:])
	if err1 != nil || err2 != nil {
		return g
	}
	var out grid.Grid
	for r := r1 - 1; r < r2 && r < len(g); r++ {
		if r < 0 {
			continue
		}
		row := g[r]
		lo, hi := c1-1, c2
		if lo < 0 {
			lo = 0
		}
		if hi > len(row) {
			hi = len(row)
		}
		if lo > len(row) {
			lo = len(row)
		}
		out = append(out, row[lo:hi])
	}
	return out
}
