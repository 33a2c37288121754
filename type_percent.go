package portfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Percent is a fraction (0.245) displayed as a percentage ("24.5%").
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.000001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String returns the percentage with one decimal place.
func (p Percent) String() string { return FormatPercent(float64(p), 1) }

// Format returns the percentage rounded to the given decimal places.
func (p Percent) Format(places int) string { return FormatPercent(float64(p), places) }

// FormatPercent renders fraction as a percentage string rounded half away
// from zero to the given number of decimal places.
//
// The fraction is shifted in decimal arithmetic, so 0.245 renders "24.5%"
// without binary floating point noise. Non-finite values render "n/a".
func FormatPercent(fraction float64, places int) string {
	if !isFinite(fraction) {
		return notAvailable
	}
	if places < 0 {
		places = 0
	}
	return decimal.NewFromFloat(fraction).Shift(2).StringFixed(int32(places)) + "%"
}

// ParsePercent reads back a fraction produced by FormatPercent.
func ParsePercent(s string) (float64, error) {
	v := strings.TrimSuffix(strings.TrimSpace(s), "%")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("cannot parse percentage %q: %w", s, err)
	}
	return d.Shift(-2).InexactFloat64(), nil
}
