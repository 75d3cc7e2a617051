package engine

import (
	"context"
	"fmt"
	"sort"

	"sheetstep/pkg/grid"
	"sheetstep/pkg/sheets"
	"sheetstep/pkg/table"

	log "github.com/sirupsen/logrus"
)

// Item is one workflow record crossing the host boundary.
type Item map[string]interface{}

// Engine runs a single spreadsheet operation per invocation. It holds no
// state across invocations; every table is rebuilt from the service.
type Engine struct {
	svc sheets.Service
}

func New(svc sheets.Service) *Engine {
	return &Engine{svc: svc}
}

// Run dispatches to exactly one operation. Side-effecting operations
// return the input batch unchanged; read and lookup produce new output
// batches.
func (e *Engine) Run(ctx context.Context, p Params, items []Item) ([]Item, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	// Writes against a sheet that does not exist yet fail on the remote
	// service; create it up front. Reads tolerate a missing sheet.
	switch p.Operation {
	case OpAppend, OpUpdate, OpClear:
		if p.Sheet != "" {
			if err := e.svc.EnsureSheetExists(ctx, p.Sheet); err != nil {
				return nil, err
			}
		}
	}
	switch p.Operation {
	case OpRead:
		return e.runRead(ctx, p)
	case OpLookup:
		return e.runLookup(ctx, p, items)
	case OpAppend:
		if err := e.runAppend(ctx, p, items); err != nil {
			return nil, err
		}
		return items, nil
	case OpUpdate:
		if err := e.runUpdate(ctx, p, items); err != nil {
			return nil, err
		}
		return items, nil
	case OpClear:
		if err := e.svc.ClearRange(ctx, p.targetRange()); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, configErr("operation", string(p.Operation))
}

func (e *Engine) runRead(ctx context.Context, p Params) ([]Item, error) {
	records := e.fetchTable(ctx, p)
	out := make([]Item, 0, len(records))
	for _, rec := range records {
		out = append(out, recordItem(rec))
	}
	return out, nil
}

func (e *Engine) runLookup(ctx context.Context, p Params, items []Item) ([]Item, error) {
	// Every item must carry a usable criterion before the fetch is paid for.
	criteria := make([]table.Criterion, len(items))
	for i, item := range items {
		crit, err := criterionFor(p, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		criteria[i] = crit
	}
	records := e.fetchTable(ctx, p)
	var out []Item
	for _, crit := range criteria {
		for _, rec := range table.Lookup(records, crit, p.ReturnAllMatches) {
			out = append(out, recordItem(rec))
		}
	}
	return out, nil
}

func (e *Engine) runAppend(ctx context.Context, p Params, items []Item) error {
	if p.RawMode {
		g, err := rawGrid(items)
		if err != nil {
			return err
		}
		return e.svc.AppendGrid(ctx, p.targetRange(), g, p.ValueInput)
	}
	records := make([]table.Fields, len(items))
	for i, item := range items {
		records[i] = itemFields(item)
	}
	g, _, err := e.fetchGrid(ctx, p)
	if err != nil {
		return err
	}
	header := table.HeaderAt(g, p.KeyRow)
	return e.appendRecords(ctx, p, records, header)
}

// appendRecords encodes records against the header and appends them,
// rewriting the header row first whenever encoding grew it.
func (e *Engine) appendRecords(ctx context.Context, p Params, records []table.Fields, header table.Header) error {
	if len(records) == 0 {
		return nil
	}
	rows, grown := table.Encode(records, header)
	if len(grown) > len(header) {
		headerRow := make(grid.Row, len(grown))
		for i, name := range grown {
			headerRow[i] = grid.Text(name)
		}
		rng := sheets.RowSegment(p.Sheet, p.KeyRow, 0, len(grown)-1)
		if err := e.svc.WriteGrid(ctx, rng, grid.Grid{headerRow}, p.ValueInput); err != nil {
			return err
		}
	}
	return e.svc.AppendGrid(ctx, p.targetRange(), rows, p.ValueInput)
}

func (e *Engine) runUpdate(ctx context.Context, p Params, items []Item) error {
	if p.RawMode {
		g, err := rawGrid(items)
		if err != nil {
			return err
		}
		return e.svc.WriteGrid(ctx, p.targetRange(), g, p.ValueInput)
	}
	incoming := make([]table.Fields, len(items))
	for i, item := range items {
		incoming[i] = itemFields(item)
	}
	g, _, err := e.fetchGrid(ctx, p)
	if err != nil {
		return err
	}
	header := table.HeaderAt(g, p.KeyRow)
	existing := table.Decode(g, p.KeyRow, p.DataStartRow)
	updates, unmatched := table.Reconcile(existing, header, incoming, p.KeyField)

	switch p.Unmatched {
	case UnmatchedError:
		if len(unmatched) > 0 {
			return fmt.Errorf("%d records have no matching %q in the sheet", len(unmatched), p.KeyField)
		}
	case UnmatchedAppend:
		if err := e.appendRecords(ctx, p, unmatched, header); err != nil {
			return err
		}
	default:
		if len(unmatched) > 0 {
			log.Debugf("skipping %d records with no matching %q", len(unmatched), p.KeyField)
		}
	}

	var writes []sheets.RangeGrid
	for _, u := range updates {
		writes = append(writes, updateSegments(p.Sheet, u)...)
	}
	return e.svc.BatchWrite(ctx, writes, p.ValueInput)
}

// fetchTable reads and decodes the configured range. An unavailable or
// empty source decodes as an empty table so that read and lookup stay
// healthy across transient gaps.
func (e *Engine) fetchTable(ctx context.Context, p Params) []table.Record {
	g, ok, err := e.svc.FetchGrid(ctx, p.targetRange(), p.ValueRender)
	if err != nil {
		log.Warnf("treating unavailable range %s as empty: %v", p.targetRange(), err)
		return nil
	}
	if !ok {
		return nil
	}
	return table.Decode(g, p.KeyRow, p.DataStartRow)
}

// fetchGrid reads the configured range for a write path, where fetch
// failures are fatal. An absent range is an empty grid.
func (e *Engine) fetchGrid(ctx context.Context, p Params) (grid.Grid, bool, error) {
	g, ok, err := e.svc.FetchGrid(ctx, p.targetRange(), p.ValueRender)
	if err != nil {
		return nil, false, err
	}
	return g, ok, nil
}

// criterionFor builds the lookup predicate for one item: the column from
// the item's "column" field falling back to the invocation default, the
// value from the item's "value" field.
func criterionFor(p Params, item Item) (table.Criterion, error) {
	column := p.LookupColumn
	if v, ok := item["column"]; ok {
		if s, ok := v.(string); ok && s != "" {
			column = s
		}
	}
	if column == "" {
		return table.Criterion{}, configErr("lookupColumn", "no criterion column for item")
	}
	v, ok := item["value"]
	if !ok {
		return table.Criterion{}, configErr("value", "no criterion value for item")
	}
	return table.Criterion{Column: column, Value: grid.FromValue(v)}, nil
}

// rawGrid concatenates the raw value blocks of all items into one grid.
func rawGrid(items []Item) (grid.Grid, error) {
	var out grid.Grid
	for i, item := range items {
		g, err := grid.FromRaw(item["values"])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, g...)
	}
	return out, nil
}

// updateSegments turns a row-scoped update into one write per contiguous
// run of columns, leaving unmentioned columns untouched.
func updateSegments(sheet string, u table.Update) []sheets.RangeGrid {
	cols := make([]int, 0, len(u.Cells))
	for col := range u.Cells {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	var segments []sheets.RangeGrid
	for start := 0; start < len(cols); {
		end := start
		for end+1 < len(cols) && cols[end+1] == cols[end]+1 {
			end++
		}
		row := make(grid.Row, 0, end-start+1)
		for i := start; i <= end; i++ {
			row = append(row, u.Cells[cols[i]])
		}
		segments = append(segments, sheets.RangeGrid{
			Range: sheets.RowSegment(sheet, u.Row, cols[start], cols[end]),
			Grid:  grid.Grid{row},
		})
		start = end + 1
	}
	return segments
}

func recordItem(rec table.Record) Item {
	item := make(Item, len(rec.Fields))
	for name, cell := range rec.Fields {
		item[name] = cell.Value()
	}
	return item
}

func itemFields(item Item) table.Fields {
	fields := make(table.Fields, len(item))
	for name, v := range item {
		fields[name] = grid.FromValue(v)
	}
	return fields
}
