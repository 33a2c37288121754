package portfolio

import (
	"math"
	"testing"
)

func TestDeriveProgressFraction(t *testing.T) {
	tests := []struct {
		name  string
		state ProgressState
		want  float64
	}{
		{"initial", InitialProgress(), 0},
		{"quarter", ProgressState{Current: 25_000, Target: 100_000}, 0.25},
		{"exact", ProgressState{Current: 100_000, Target: 100_000}, 1},
		{"over-subscribed", ProgressState{Current: 150_000, Target: 100_000}, 1},
		{"zero target", ProgressState{Current: 50_000, Target: 0}, 0},
		{"negative target", ProgressState{Current: 50_000, Target: -10}, 0},
		{"negative current", ProgressState{Current: -10, Target: 100}, 0},
		{"infinite current", ProgressState{Current: math.Inf(1), Target: 100}, 1},
		{"NaN current", ProgressState{Current: math.NaN(), Target: 100}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveProgressFraction(tc.state); got != tc.want {
				t.Errorf("DeriveProgressFraction(%+v) = %v, want %v", tc.state, got, tc.want)
			}
		})
	}
}

func TestDeriveProgressFraction_Bounded(t *testing.T) {
	values := []float64{0, 1, 99, 100, 101, 50_000, 1e15}
	targets := []float64{-1e9, -1, 0, 1, 100, 100_000, 1e15}
	for _, current := range values {
		for _, target := range targets {
			got := DeriveProgressFraction(ProgressState{Current: current, Target: target})
			if got < 0 || got > 1 || math.IsNaN(got) {
				t.Errorf("DeriveProgressFraction(%v, %v) = %v, want within [0, 1]", current, target, got)
			}
		}
	}
}

func TestProgressState_Ratio(t *testing.T) {
	p := ProgressState{Current: 150_000, Target: 100_000}
	if got := p.Fraction(); got != 1 {
		t.Errorf("Fraction() = %v, want 1", got)
	}
	if got := p.Ratio(); got != 1.5 {
		t.Errorf("Ratio() = %v, want 1.5", got)
	}
	if got := FormatPercent(p.Ratio(), 0); got != "150%" {
		t.Errorf("FormatPercent(Ratio()) = %q, want %q", got, "150%")
	}
	if got := p.Remaining(); got != 0 {
		t.Errorf("Remaining() = %v, want 0", got)
	}
	if got := (ProgressState{Current: 30_000, Target: 100_000}).Remaining(); got != 70_000 {
		t.Errorf("Remaining() = %v, want 70000", got)
	}
	if got := (ProgressState{Current: 5, Target: 0}).Ratio(); got != 0 {
		t.Errorf("Ratio() with zero target = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{3, 3, 3, 3},
	}
	for _, tc := range tests {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("Clamp(0, 1, 0) did not panic")
		}
	}()
	Clamp(0, 1, 0)
}
