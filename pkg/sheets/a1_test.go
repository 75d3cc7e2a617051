package sheets

import (
	"testing"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		if got := ColumnName(tt.col); got != tt.want {
			t.Errorf("ColumnName(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestRowSegment(t *testing.T) {
	rng := RowSegment("People", 2, 1, 3)
	if rng.String() != "People!B3:D3" {
		t.Errorf("RowSegment = %q, want %q", rng.String(), "People!B3:D3")
	}
}

func TestRangeString(t *testing.T) {
	tests := []struct {
		rng  Range
		want string
	}{
		{Range{Sheet: "Sheet1", A1: "A1:B2"}, "Sheet1!A1:B2"},
		{Range{Sheet: "Sheet1"}, "Sheet1"},
		{Range{A1: "A1:B2"}, "A1:B2"},
	}
	for _, tt := range tests {
		if got := tt.rng.String(); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.rng, got, tt.want)
		}
	}
}
