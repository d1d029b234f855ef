package action

import (
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"12 * 4", 48},
		{"5 + 3 - 2", 6},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"2 ^ 10", 1024},
		{"2 ^ 3 ^ 2", 512}, // right-associative
		{"10 % 3", 1},
		{"-3 + 5", 2},
		{"3 - -2", 5},
		{"3.5 * 2", 7},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.expr, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateRejectsNonArithmetic(t *testing.T) {
	exprs := []string{
		"",
		"import os",
		"__import__('os')",
		"2 + x",
		"(2 + 3",
		"4 +",
		"system('ls')",
	}
	for _, expr := range exprs {
		if _, err := Evaluate(expr); err == nil {
			t.Errorf("Evaluate(%q) succeeded, want error", expr)
		}
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	for _, expr := range []string{"1 / 0", "5 % 0"} {
		if _, err := Evaluate(expr); err == nil {
			t.Errorf("Evaluate(%q) succeeded, want division error", expr)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{48, "48"},
		{2.5, "2.5"},
		{-7, "-7"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
