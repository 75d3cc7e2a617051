package api

import (
	"context"

	"sheetstep/pkg/grid"
	"sheetstep/pkg/sheets"
)

type mockService struct {
	Grid    grid.Grid
	FetchOK bool
	Err     error

	FetchCalls  []sheets.Range
	WriteCalls  []sheets.RangeGrid
	AppendCalls []sheets.RangeGrid
	ClearCalls  []sheets.Range
	BatchCalls  [][]sheets.RangeGrid
	EnsureCalls []string
}

func (m *mockService) FetchGrid(_ context.Context, rng sheets.Range, _ sheets.ValueRenderMode) (grid.Grid, bool, error) {
	m.FetchCalls = append(m.FetchCalls, rng)
	return m.Grid, m.FetchOK, m.Err
}

func (m *mockService) WriteGrid(_ context.Context, rng sheets.Range, g grid.Grid, _ sheets.ValueInputMode) error {
	m.WriteCalls = append(m.WriteCalls, sheets.RangeGrid{Range: rng, Grid: g})
	return m.Err
}

func (m *mockService) AppendGrid(_ context.Context, rng sheets.Range, g grid.Grid, _ sheets.ValueInputMode) error {
	m.AppendCalls = append(m.AppendCalls, sheets.RangeGrid{Range: rng, Grid: g})
	return m.Err
}

func (m *mockService) ClearRange(_ context.Context, rng sheets.Range) error {
	m.ClearCalls = append(m.ClearCalls, rng)
	return m.Err
}

func (m *mockService) BatchWrite(_ context.Context, writes []sheets.RangeGrid, _ sheets.ValueInputMode) error {
	m.BatchCalls = append(m.BatchCalls, writes)
	return m.Err
}

func (m *mockService) EnsureSheetExists(_ context.Context, sheet string) error {
	m.EnsureCalls = append(m.EnsureCalls, sheet)
	return m.Err
}
