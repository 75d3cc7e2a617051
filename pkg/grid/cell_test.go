package grid

import (
	"testing"
)

func TestFromValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want Cell
	}{
		{nil, Empty()},
		{"", Empty()},
		{"Alice", Text("Alice")},
		{42.5, Number(42.5)},
		{7, Number(7)},
		{int64(7), Number(7)},
		{true, Text("TRUE")},
		{false, Text("FALSE")},
	}
	for _, tt := range tests {
		got := FromValue(tt.in)
		if !got.Equal(tt.want) {
			t.Errorf("FromValue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCellEqualNoCoercion(t *testing.T) {
	tests := []struct {
		a, b Cell
		want bool
	}{
		{Text("3"), Text("3"), true},
		{Number(3), Number(3), true},
		{Number(3), Text("3"), false},
		{Text(""), Empty(), false},
		{Empty(), Empty(), true},
		{Text("a"), Text("A"), false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCellIsEmpty(t *testing.T) {
	tests := []struct {
		in   Cell
		want bool
	}{
		{Empty(), true},
		{Cell{}, true},
		{Text("x"), false},
		{Number(0), false},
	}
	for _, tt := range tests {
		if got := tt.in.IsEmpty(); got != tt.want {
			t.Errorf("IsEmpty(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		in   Cell
		want string
	}{
		{Empty(), ""},
		{Text("Bob"), "Bob"},
		{Number(2), "2"},
		{Number(2.5), "2.5"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValueRoundTrip(t *testing.T) {
	for _, c := range []Cell{Text("x"), Number(1.25), Empty()} {
		got := FromValue(c.Value())
		if !got.Equal(c) {
			t.Errorf("FromValue(Value(%v)) = %v", c, got)
		}
	}
}
