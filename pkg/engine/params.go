package engine

import (
	"sheetstep/pkg/sheets"
)

// Operation selects which of the five step behaviors to run.
type Operation string

const (
	OpAppend Operation = "append"
	OpClear  Operation = "clear"
	OpLookup Operation = "lookup"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
)

// UnmatchedPolicy decides what happens to an incoming update record
// whose key matches no existing row.
type UnmatchedPolicy string

const (
	UnmatchedSkip   UnmatchedPolicy = "skip"
	UnmatchedAppend UnmatchedPolicy = "append"
	UnmatchedError  UnmatchedPolicy = "error"
)

// Params is the per-invocation configuration supplied by the workflow
// host.
type Params struct {
	Operation        Operation
	Sheet            string
	Range            string // A1 address within the sheet, optional
	KeyRow           int    // 0-based header row index
	DataStartRow     int    // 0-based first data row index
	KeyField         string // key column name for keyed update
	LookupColumn     string // default criterion column for lookup
	ReturnAllMatches bool
	RawMode          bool
	ValueInput       sheets.ValueInputMode
	ValueRender      sheets.ValueRenderMode
	Unmatched        UnmatchedPolicy
}

// Normalize fills in the defaults for zero-valued fields.
func (p *Params) Normalize() {
	if p.DataStartRow == 0 {
		p.DataStartRow = 1
	}
	if p.ValueInput == "" {
		p.ValueInput = sheets.InputUserEntered
	}
	if p.ValueRender == "" {
		p.ValueRender = sheets.RenderUnformatted
	}
	if p.Unmatched == "" {
		p.Unmatched = UnmatchedSkip
	}
}

// Validate rejects invalid configuration before any network call.
func (p Params) Validate() error {
	switch p.Operation {
	case OpAppend, OpClear, OpLookup, OpRead, OpUpdate:
	default:
		return configErr("operation", "must be one of append, clear, lookup, read, update")
	}
	if p.Sheet == "" && p.Range == "" {
		return configErr("range", "sheet or range must be set")
	}
	if p.KeyRow < 0 {
		return configErr("keyRow", "must not be negative")
	}
	if p.DataStartRow < 1 {
		return configErr("dataStartRow", "must be at least 1")
	}
	if p.KeyRow >= p.DataStartRow {
		return configErr("keyRow", "must be above the data start row")
	}
	switch p.ValueInput {
	case sheets.InputRaw, sheets.InputUserEntered:
	default:
		return configErr("valueInputMode", "must be RAW or USER_ENTERED")
	}
	switch p.ValueRender {
	case sheets.RenderFormatted, sheets.RenderFormula, sheets.RenderUnformatted:
	default:
		return configErr("valueRenderMode", "must be FORMATTED_VALUE, FORMULA or UNFORMATTED_VALUE")
	}
	switch p.Unmatched {
	case UnmatchedSkip, UnmatchedAppend, UnmatchedError:
	default:
		return configErr("unmatched", "must be skip, append or error")
	}
	if p.RawMode && p.Operation != OpAppend && p.Operation != OpUpdate {
		return configErr("rawMode", "only append and update support raw mode")
	}
	if p.Operation == OpUpdate && !p.RawMode && p.KeyField == "" {
		return configErr("keyField", "required for keyed update")
	}
	return nil
}

func (p Params) targetRange() sheets.Range {
	return sheets.Range{Sheet: p.Sheet, A1: p.Range}
}
