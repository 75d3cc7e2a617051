package sheets

import (
	"context"

	"sheetstep/pkg/grid"
)

// ValueInputMode controls how the destination service interprets written
// values: literally, or parsed as if the end user had typed them.
type ValueInputMode string

const (
	InputRaw         ValueInputMode = "RAW"
	InputUserEntered ValueInputMode = "USER_ENTERED"
)

// ValueRenderMode controls how read values are rendered in the response.
type ValueRenderMode string

const (
	RenderFormatted   ValueRenderMode = "FORMATTED_VALUE"
	RenderFormula     ValueRenderMode = "FORMULA"
	RenderUnformatted ValueRenderMode = "UNFORMATTED_VALUE"
)

// Range addresses a cell range: an A1-style address, optionally scoped
// to a named sheet.
type Range struct {
	Sheet string
	A1    string
}

// String renders the range in the form the Sheets API expects.
func (r Range) String() string {
	if r.Sheet == "" {
		return r.A1
	}
	if r.A1 == "" {
		return r.Sheet
	}
	return r.Sheet + "!" + r.A1
}

// RangeGrid pairs a target range with the values destined for it, for
// batched writes.
type RangeGrid struct {
	Range Range
	Grid  grid.Grid
}

// Service is the grid source/sink contract the engine composes with.
// FetchGrid's second return is false when the range holds no values.
// EnsureSheetExists creates the named sheet when it is missing, so that
// writes against a fresh spreadsheet behave the same on every backend.
type Service interface {
	FetchGrid(ctx context.Context, rng Range, render ValueRenderMode) (grid.Grid, bool, error)
	WriteGrid(ctx context.Context, rng Range, g grid.Grid, input ValueInputMode) error
	AppendGrid(ctx context.Context, rng Range, g grid.Grid, input ValueInputMode) error
	ClearRange(ctx context.Context, rng Range) error
	BatchWrite(ctx context.Context, writes []RangeGrid, input ValueInputMode) error
	EnsureSheetExists(ctx context.Context, sheet string) error
}
