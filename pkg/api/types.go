package api

import (
	"sheetstep/pkg/engine"
	"sheetstep/pkg/sheets"
)

// RunRequest is the JSON body of a step invocation: the operation
// configuration plus the batch of input items.
type RunRequest struct {
	Operation        string        `json:"operation"`
	Sheet            string        `json:"sheet,omitempty"`
	Range            string        `json:"range,omitempty"`
	KeyRow           int           `json:"keyRow"`
	DataStartRow     int           `json:"dataStartRow"`
	KeyField         string        `json:"keyField,omitempty"`
	LookupColumn     string        `json:"lookupColumn,omitempty"`
	ReturnAllMatches bool          `json:"returnAllMatches,omitempty"`
	RawMode          bool          `json:"rawMode,omitempty"`
	ValueInputMode   string        `json:"valueInputMode,omitempty"`
	ValueRenderMode  string        `json:"valueRenderMode,omitempty"`
	Unmatched        string        `json:"unmatched,omitempty"`
	Items            []engine.Item `json:"items"`
}

// RunResponse carries the output batch back to the workflow host.
type RunResponse struct {
	InvocationID string        `json:"invocationId"`
	Items        []engine.Item `json:"items"`
}

type errorResponse struct {
	InvocationID string `json:"invocationId,omitempty"`
	Error        string `json:"error"`
}

func (r RunRequest) params() engine.Params {
	return engine.Params{
		Operation:        engine.Operation(r.Operation),
		Sheet:            r.Sheet,
		Range:            r.Range,
		KeyRow:           r.KeyRow,
		DataStartRow:     r.DataStartRow,
		KeyField:         r.KeyField,
		LookupColumn:     r.LookupColumn,
		ReturnAllMatches: r.ReturnAllMatches,
		RawMode:          r.RawMode,
		ValueInput:       sheets.ValueInputMode(r.ValueInputMode),
		ValueRender:      sheets.ValueRenderMode(r.ValueRenderMode),
		Unmatched:        engine.UnmatchedPolicy(r.Unmatched),
	}
}
