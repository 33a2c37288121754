package portfolio

import "math"

// DefaultTarget is the campaign goal used when a progress document has none.
const DefaultTarget = 100_000

// ProgressState is the committed-vs-goal counter of a live campaign.
//
// Current may exceed Target (over-subscription), the clamping only applies
// to the progress fraction.
type ProgressState struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}

// InitialProgress is the state displayed before any progress document was read.
func InitialProgress() ProgressState { return ProgressState{Current: 0, Target: DefaultTarget} }

// DeriveProgressFraction returns current/target clamped to [0, 1].
//
// A non-positive target yields 0, never a division fault.
func DeriveProgressFraction(p ProgressState) float64 {
	r := p.Ratio()
	if math.IsNaN(r) {
		return 0
	}
	return Clamp(r, 0, 1)
}

// Fraction is DeriveProgressFraction(p).
func (p ProgressState) Fraction() float64 { return DeriveProgressFraction(p) }

// Ratio returns the unclamped current/target, e.g. 1.5 for a 150%
// over-subscribed campaign. A non-positive target yields 0.
func (p ProgressState) Ratio() float64 {
	if !(p.Target > 0) {
		return 0
	}
	return p.Current / p.Target
}

// Remaining returns the amount left to reach the target, never negative.
func (p ProgressState) Remaining() float64 {
	if !(p.Target > p.Current) {
		return 0
	}
	return p.Target - p.Current
}

// Clamp returns v limited to the closed interval [lo, hi].
//
// It panics if lo > hi.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		panic("portfolio: Clamp called with lo > hi")
	}
	return max(lo, min(v, hi))
}
