package common

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{12.5, 12.5},
		{int64(7), 7},
		{"  42.25 ", 42.25},
		{"", 0},
		{"abc", 0},
		{true, 1},
		{json.Number("3"), 3},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{[]int{1}, 0},
	}
	for _, tc := range cases {
		if got := ToNumber(tc.in); got != tc.want {
			t.Errorf("ToNumber(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNonNegative(t *testing.T) {
	if got := NonNegativeNumber(-3); got != 0 {
		t.Fatalf("negative price should clamp to 0, got %v", got)
	}
	if got := NonNegativeNumber("19.99"); got != 19.99 {
		t.Fatalf("got %v", got)
	}
	if got := NonNegativeInt("3.9"); got != 3 {
		t.Fatalf("expected truncation to 3, got %d", got)
	}
	if got := NonNegativeInt(-2); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := NonNegativeInt(nil); got != 0 {
		t.Fatalf("got %d", got)
	}
}

func TestStringOr(t *testing.T) {
	if StringOr("", "def") != "def" {
		t.Fatalf("empty should use default")
	}
	if StringOr(" x ", "def") != " x " {
		t.Fatalf("value must be kept as-is")
	}
}
