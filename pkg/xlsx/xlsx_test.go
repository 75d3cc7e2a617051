package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"sheetstep/pkg/grid"
	"sheetstep/pkg/sheets"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCell(t *testing.T) {
	tests := []struct {
		in   string
		want grid.Cell
	}{
		{"", grid.Empty()},
		{"Alice", grid.Text("Alice")},
		{"42", grid.Number(42)},
		{"4.5", grid.Number(4.5)},
		{"4x5", grid.Text("4x5")},
	}
	for _, tt := range tests {
		if got := decodeCell(tt.in); !got.Equal(tt.want) {
			t.Errorf("decodeCell(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		a1       string
		col, row int
	}{
		{"", 0, 0},
		{"A1", 0, 0},
		{"B3", 1, 2},
		{"B3:D9", 1, 2},
		{"A:Z", 0, 0},
	}
	for _, tt := range tests {
		col, row := origin(tt.a1)
		if col != tt.col || row != tt.row {
			t.Errorf("origin(%q) = %d, %d, want %d, %d", tt.a1, col, row, tt.col, tt.row)
		}
	}
}

func TestClip(t *testing.T) {
	g := grid.Grid{
		{grid.Text("a"), grid.Text("b"), grid.Text("c")},
		{grid.Text("d"), grid.Text("e"), grid.Text("f")},
		{grid.Text("g")},
	}
	assert.Equal(t, g, clip(g, ""))
	assert.Equal(t, g, clip(g, "A:C"))
	assert.Equal(t, grid.Grid{
		{grid.Text("b"), grid.Text("c")},
		{grid.Text("e"), grid.Text("f")},
	}, clip(g, "B1:C2"))
	// ragged rows clip to what they have
	assert.Equal(t, grid.Grid{
		{grid.Text("e")},
		{},
	}, clip(g, "B2:B3"))
}

func TestEnsureSheetExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.xlsx")
	b := NewBackend(path)
	ctx := context.Background()

	assert.Nil(t, b.EnsureSheetExists(ctx, "People"))
	// a second call against the now-existing sheet is a no-op
	assert.Nil(t, b.EnsureSheetExists(ctx, "People"))

	err := b.AppendGrid(ctx, sheets.Range{Sheet: "People"}, grid.Grid{
		{grid.Text("id")},
	}, sheets.InputUserEntered)
	assert.Nil(t, err)

	g, ok, err := b.FetchGrid(ctx, sheets.Range{Sheet: "People"}, sheets.RenderUnformatted)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, grid.Grid{{grid.Text("id")}}, g)
}

func TestBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.xlsx")
	b := NewBackend(path)
	ctx := context.Background()
	rng := sheets.Range{Sheet: "People"}

	g, ok, err := b.FetchGrid(ctx, rng, sheets.RenderUnformatted)
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Empty(t, g)

	err = b.AppendGrid(ctx, rng, grid.Grid{
		{grid.Text("id"), grid.Text("name")},
		{grid.Text("1"), grid.Text("Alice")},
	}, sheets.InputUserEntered)
	assert.Nil(t, err)

	err = b.AppendGrid(ctx, rng, grid.Grid{
		{grid.Text("2"), grid.Text("Bob")},
	}, sheets.InputUserEntered)
	assert.Nil(t, err)

	g, ok, err = b.FetchGrid(ctx, rng, sheets.RenderUnformatted)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, grid.Grid{
		{grid.Text("id"), grid.Text("name")},
		{grid.Number(1), grid.Text("Alice")},
		{grid.Number(2), grid.Text("Bob")},
	}, g)

	err = b.BatchWrite(ctx, []sheets.RangeGrid{
		{
			Range: sheets.Range{Sheet: "People", A1: "B3:B3"},
			Grid:  grid.Grid{{grid.Text("Robert")}},
		},
	}, sheets.InputUserEntered)
	assert.Nil(t, err)

	g, _, err = b.FetchGrid(ctx, rng, sheets.RenderUnformatted)
	assert.Nil(t, err)
	assert.Equal(t, grid.Text("Robert"), g[2][1])
}
