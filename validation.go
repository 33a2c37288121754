package portfolio

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every *InvalidInputError using errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports an input value that breaks an invariant.
type InvalidInputError struct {
	Field  string  // name of the offending field, as encoded in JSON
	Value  float64 // offending value, NaN when not numeric
	Reason string
}

func (e *InvalidInputError) Error() string {
	if math.IsNaN(e.Value) {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) true.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// invalid is a shortcut to create an InvalidInputError.
func invalid(field string, value float64, reason string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Reason: fmt.Sprintf(reason, args...)}
}

// isFinite returns true if v is neither NaN nor infinite.
func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate checks every invariant of the snapshot and returns the first violation.
//
// Committed capital is the only mandatory positive denominator. A zero deployed
// capital is a valid state: a fund with nothing placed yet.
func (s PortfolioSnapshot) Validate() error {
	if !(s.CommittedCapital > 0) || math.IsInf(s.CommittedCapital, 0) {
		return invalid("committedCapital", s.CommittedCapital, "must be a positive amount")
	}

	amounts := []struct {
		field string
		value float64
	}{
		{"deployedCapital", s.DeployedCapital},
		{"collectedPrincipal", s.CollectedPrincipal},
		{"collectedYield", s.CollectedYield},
		{"outstandingPrincipal", s.OutstandingPrincipal},
		{"reservedDefaultAmount", s.ReservedDefaultAmount},
	}
	for _, a := range amounts {
		if !isFinite(a.value) || a.value < 0 {
			return invalid(a.field, a.value, "must be a non-negative amount")
		}
	}
	if s.ReservedDefaultAmount > s.DeployedCapital {
		return invalid("reservedDefaultAmount", s.ReservedDefaultAmount, "cannot exceed deployed capital %v", s.DeployedCapital)
	}
	if s.ReservedDefaultDeals < 0 {
		return invalid("reservedDefaultDeals", float64(s.ReservedDefaultDeals), "must not be negative")
	}
	if s.DealCount < 0 {
		return invalid("dealCount", float64(s.DealCount), "must not be negative")
	}
	if s.RenewalCount < 0 || s.RenewalCount > s.DealCount {
		return invalid("renewalCount", float64(s.RenewalCount), "must be between 0 and the deal count %d", s.DealCount)
	}
	if !isFinite(s.RunRateAnnualized) {
		return invalid("runRateAnnualized", s.RunRateAnnualized, "must be a finite fraction")
	}
	for _, ind := range s.Industries {
		if !isFinite(ind.Fraction) || ind.Fraction < 0 {
			return invalid("industries", ind.Fraction, "share of %q must be a non-negative fraction", ind.Name)
		}
	}
	return nil
}

// Validate checks that both counters are finite numbers.
//
// Any finite target is accepted, degenerate targets are handled by the
// progress fraction policy.
func (p ProgressState) Validate() error {
	if !isFinite(p.Current) {
		return invalid("current", p.Current, "must be a finite amount")
	}
	if !isFinite(p.Target) {
		return invalid("target", p.Target, "must be a finite amount")
	}
	return nil
}
