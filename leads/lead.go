// Package leads records the investor interest captured by the landing page.
package leads

import (
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/capnow/portfolio"
)

// DefaultSource tags leads submitted through the landing page form.
const DefaultSource = "landing-page"

// Lead is a prospective investor asking to be contacted.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Amount    float64   `json:"amount"` // indicated allocation, in the reporting currency
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewLead builds a lead from raw form values and validates it.
//
// The amount is parsed the way the form submits it, a plain number that may
// carry a currency sign or thousands separators ("$25,000").
func NewLead(name, email, amount string) (Lead, error) {
	raw := strings.NewReplacer("$", "", ",", "", " ", "").Replace(amount)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = math.NaN()
	}
	l := Lead{
		Name:   strings.TrimSpace(name),
		Email:  strings.TrimSpace(email),
		Amount: v,
		Source: DefaultSource,
	}
	if err := l.Validate(); err != nil {
		return Lead{}, err
	}
	return l, nil
}

// Validate checks the lead is complete.
func (l Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return &portfolio.InvalidInputError{Field: "name", Value: math.NaN(), Reason: "is required"}
	}
	addr, err := mail.ParseAddress(l.Email)
	if err != nil || addr.Address != l.Email {
		return &portfolio.InvalidInputError{Field: "email", Value: math.NaN(), Reason: "must be a valid email address"}
	}
	if math.IsNaN(l.Amount) || math.IsInf(l.Amount, 0) || l.Amount <= 0 {
		return &portfolio.InvalidInputError{Field: "amount", Value: l.Amount, Reason: "must be a positive amount"}
	}
	return nil
}
