package portfolio

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ReportingCurrency is the only currency amounts are displayed in.
const ReportingCurrency = money.USD

// notAvailable is displayed in place of a non-finite value.
const notAvailable = "n/a"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// USD creates money in the reporting currency.
func USD[T float64 | int | int64 | decimal.Decimal](value T) Money { return M(value, ReportingCurrency) }

// currency returns the money's currency
func (m Money) currency() *money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, m.cur).Currency()
}

// String returns the money in whole units, e.g. "$96,500".
//
// The value is rounded half away from zero, so formatting an already whole
// amount never changes it. Digits are grouped from the decimal string, any
// magnitude is rendered exactly.
func (m Money) String() string {
	cur := m.currency()
	whole := m.value.Round(0)
	amount := group(whole.Abs().String(), cur.Thousand)
	// same layout as money.Formatter: template of the unsigned amount, sign first.
	result := strings.Replace(cur.Template, "1", amount, 1)
	result = strings.Replace(result, "$", cur.Grapheme, 1)
	if whole.Sign() < 0 {
		result = "-" + result
	}
	return result
}

// group inserts sep every three digits from the right of digits.
func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func (m Money) Currency() string   { return m.cur }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) AsFloat() float64   { return m.value.InexactFloat64() }

// FormatCurrency renders n as whole-unit USD with thousands separators.
//
// Non-finite values are rendered as "n/a".
func FormatCurrency(n float64) string {
	if !isFinite(n) {
		return notAvailable
	}
	return USD(n).String()
}

// ParseCurrency reads back an amount produced by FormatCurrency.
func ParseCurrency(s string) (float64, error) {
	cur := money.GetCurrency(ReportingCurrency)
	v := strings.TrimSpace(s)
	neg := strings.HasPrefix(v, "-")
	v = strings.TrimPrefix(v, "-")
	v = strings.TrimPrefix(v, cur.Grapheme)
	v = strings.ReplaceAll(v, cur.Thousand, "")
	if v == "" || strings.TrimLeft(v, "0123456789") != "" {
		return 0, fmt.Errorf("cannot parse amount %q: not a whole amount", s)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("cannot parse amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d.InexactFloat64(), nil
}

// FormatCompact renders n with a k/M/B suffix and at most one decimal,
// e.g. "25k", "1.5M". It is meant for axis ticks, not for amounts.
//
// The unit is picked after rounding, 999,999 is "1M" rather than "1000k".
func FormatCompact(n float64) string {
	if !isFinite(n) {
		return notAvailable
	}
	d := decimal.NewFromFloat(n)
	units := []struct {
		suffix string
		shift  int32
		places int32
	}{
		{"", 0, 0},
		{"k", 3, 1},
		{"M", 6, 1},
		{"B", 9, 1},
	}
	i := 0
	for i+1 < len(units) && d.Abs().GreaterThanOrEqual(decimal.New(1, units[i+1].shift)) {
		i++
	}
	thousand := decimal.New(1, 3)
	for {
		u := units[i]
		v := d.Shift(-u.shift).Round(u.places)
		if v.Abs().GreaterThanOrEqual(thousand) && i+1 < len(units) {
			i++
			continue
		}
		return v.String() + u.suffix
	}
}
