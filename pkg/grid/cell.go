package grid

import (
	"fmt"
	"strconv"
)

// Kind discriminates the closed set of cell value variants.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

// Cell is a single spreadsheet cell value: text, a number, or empty.
// The zero value is the empty cell.
type Cell struct {
	kind   Kind
	text   string
	number float64
}

func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

func Number(f float64) Cell {
	return Cell{kind: KindNumber, number: f}
}

func Empty() Cell {
	return Cell{}
}

func (c Cell) Kind() Kind {
	return c.kind
}

func (c Cell) IsEmpty() bool {
	return c.kind == KindEmpty
}

// Equal reports whether two cells hold the same kind and the same value.
// There is no cross-kind coercion: Number(3) never equals Text("3").
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindText:
		return c.text == o.text
	case KindNumber:
		return c.number == o.number
	default:
		return true
	}
}

// String renders the cell in its canonical text form. Empty cells render
// as the empty string, numbers without a trailing exponent or zeros.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.number, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric value of a number cell, or 0 for other kinds.
func (c Cell) Float() float64 {
	return c.number
}

// FromValue converts a loosely typed value, as returned by the Sheets API
// or decoded from JSON, into a Cell. Booleans become TRUE/FALSE text, the
// way the spreadsheet service renders them; nil and "" are empty cells.
func FromValue(v interface{}) Cell {
	switch t := v.(type) {
	case nil:
		return Empty()
	case string:
		if t == "" {
			return Empty()
		}
		return Text(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case bool:
		if t {
			return Text("TRUE")
		}
		return Text("FALSE")
	default:
		return Text(fmt.Sprint(t))
	}
}

// Value is the inverse of FromValue, producing the loosely typed form the
// Sheets API and JSON encoding expect. Empty cells become "" so that a
// written cell is actually blanked rather than skipped.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return c.number
	default:
		return ""
	}
}
