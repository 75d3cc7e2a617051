package table

import (
	"testing"

	"sheetstep/pkg/grid"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	g := sampleGrid()
	header := HeaderAt(g, 0)
	existing := Decode(g, 0, 1)

	updates, unmatched := Reconcile(existing, header, []Fields{
		{"id": grid.Text("2"), "name": grid.Text("Robert")},
	}, "id")

	assert.Empty(t, unmatched)
	assert.Equal(t, []Update{
		{Row: 2, Cells: map[int]grid.Cell{1: grid.Text("Robert")}},
	}, updates)
}

func TestReconcileUnmatchedSkipped(t *testing.T) {
	g := sampleGrid()
	existing := Decode(g, 0, 1)

	updates, unmatched := Reconcile(existing, HeaderAt(g, 0), []Fields{
		{"id": grid.Text("9"), "name": grid.Text("X")},
	}, "id")

	assert.Empty(t, updates)
	assert.Equal(t, []Fields{
		{"id": grid.Text("9"), "name": grid.Text("X")},
	}, unmatched)
}

func TestReconcileFirstMatchWins(t *testing.T) {
	g := grid.Grid{
		{grid.Text("id"), grid.Text("name")},
		{grid.Text("2"), grid.Text("Bob")},
		{grid.Text("2"), grid.Text("Bobby")},
	}
	existing := Decode(g, 0, 1)

	updates, unmatched := Reconcile(existing, HeaderAt(g, 0), []Fields{
		{"id": grid.Text("2"), "name": grid.Text("Robert")},
	}, "id")

	assert.Empty(t, unmatched)
	assert.Len(t, updates, 1)
	assert.Equal(t, 1, updates[0].Row)
}

func TestReconcilePartialRecord(t *testing.T) {
	g := grid.Grid{
		{grid.Text("id"), grid.Text("name"), grid.Text("email")},
		{grid.Text("1"), grid.Text("Alice"), grid.Text("a@example.com")},
	}
	existing := Decode(g, 0, 1)

	updates, _ := Reconcile(existing, HeaderAt(g, 0), []Fields{
		{"id": grid.Text("1"), "email": grid.Text("alice@example.com")},
	}, "id")

	// only the supplied field is written; name stays untouched
	assert.Equal(t, []Update{
		{Row: 1, Cells: map[int]grid.Cell{2: grid.Text("alice@example.com")}},
	}, updates)
}

func TestReconcileDropsUnknownFields(t *testing.T) {
	g := sampleGrid()
	existing := Decode(g, 0, 1)

	updates, _ := Reconcile(existing, HeaderAt(g, 0), []Fields{
		{"id": grid.Text("1"), "phone": grid.Text("555")},
	}, "id")

	assert.Empty(t, updates)
}

func TestReconcileMissingKeyField(t *testing.T) {
	g := sampleGrid()
	existing := Decode(g, 0, 1)

	updates, unmatched := Reconcile(existing, HeaderAt(g, 0), []Fields{
		{"name": grid.Text("Nameless")},
	}, "id")

	assert.Empty(t, updates)
	assert.Len(t, unmatched, 1)
}

func applyUpdates(g grid.Grid, updates []Update) grid.Grid {
	out := make(grid.Grid, len(g))
	for i, row := range g {
		out[i] = append(grid.Row{}, row...)
	}
	for _, u := range updates {
		for col, cell := range u.Cells {
			for len(out[u.Row]) <= col {
				out[u.Row] = append(out[u.Row], grid.Empty())
			}
			out[u.Row][col] = cell
		}
	}
	return out
}

func TestUpdatesIdempotent(t *testing.T) {
	g := sampleGrid()
	header := HeaderAt(g, 0)
	existing := Decode(g, 0, 1)

	updates, _ := Reconcile(existing, header, []Fields{
		{"id": grid.Text("1"), "name": grid.Text("Alicia")},
		{"id": grid.Text("2"), "name": grid.Text("Robert")},
	}, "id")

	once := applyUpdates(g, updates)
	twice := applyUpdates(once, updates)
	assert.Equal(t, once, twice)
	assert.NotEqual(t, g, once)
}

func TestReconcileNoKindCoercion(t *testing.T) {
	g := grid.Grid{
		{grid.Text("id"), grid.Text("name")},
		{grid.Number(2), grid.Text("Bob")},
	}
	existing := Decode(g, 0, 1)

	_, unmatched := Reconcile(existing, HeaderAt(g, 0), []Fields{
		{"id": grid.Text("2"), "name": grid.Text("Robert")},
	}, "id")
	assert.Len(t, unmatched, 1)

	updates, unmatched := Reconcile(existing, HeaderAt(g, 0), []Fields{
		{"id": grid.Number(2), "name": grid.Text("Robert")},
	}, "id")
	assert.Empty(t, unmatched)
	assert.Len(t, updates, 1)
}
