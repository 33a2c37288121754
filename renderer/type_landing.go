package renderer

import (
	"fmt"
	"time"

	"github.com/capnow/portfolio"
	"github.com/capnow/portfolio/leads"
)

// DefaultFormAction is where the landing page form posts leads.
const DefaultFormAction = "/api/leads"

// Progress is the view model of the campaign progress bar.
type Progress struct {
	Current  string
	Target   string
	Headline string // "$42,000 committed of $100,000"
	Percent  string // rounded, "42%"
	Width    string
	Gauge    string
	Ticks    []string // scale labels at 0, 25, 50, 75 and 100% of the target.
}

// NewProgress builds the progress bar of a campaign state.
func NewProgress(p portfolio.ProgressState) *Progress {
	f := portfolio.DeriveProgressFraction(p)
	current, target := portfolio.FormatCurrency(p.Current), portfolio.FormatCurrency(p.Target)
	pr := &Progress{
		Current:  current,
		Target:   target,
		Headline: fmt.Sprintf("%s committed of %s", current, target),
		Percent:  portfolio.FormatPercent(f, 0),
		Width:    portfolio.FormatPercent(f, 1),
		Gauge:    gauge(f),
	}
	for _, t := range []float64{0, 0.25, 0.5, 0.75, 1} {
		pr.Ticks = append(pr.Ticks, portfolio.FormatCompact(t*max(p.Target, 0)))
	}
	return pr
}

// KPI is a headline figure of the brokerage track record.
type KPI struct {
	Label  string
	Prefix string
	Value  int
	Suffix string
}

// Display renders the figure with its prefix and suffix, e.g. "$487M+".
func (k KPI) Display() string { return fmt.Sprintf("%s%d%s", k.Prefix, k.Value, k.Suffix) }

// TrackRecord returns the brokerage figures shown on the landing page.
func TrackRecord() []KPI {
	return []KPI{
		{Label: "Businesses Funded", Value: 2847, Suffix: "+"},
		{Label: "Capital Deployed", Prefix: "$", Value: 487, Suffix: "M+"},
		{Label: "Active Partners", Value: 32, Suffix: "+"},
		{Label: "Avg. Approval Time", Value: 2, Suffix: "hrs"},
	}
}

// Landing is the view model of the landing page.
type Landing struct {
	Progress   *Progress
	KPIs       []KPI
	FormAction string
	Year       int
}

// NewLanding builds the landing page for the current campaign progress.
func NewLanding(p portfolio.ProgressState) *Landing {
	return &Landing{
		Progress:   NewProgress(p),
		KPIs:       TrackRecord(),
		FormAction: DefaultFormAction,
		Year:       time.Now().Year(),
	}
}

// Receipt acknowledges a recorded lead.
type Receipt struct {
	ID     string
	Name   string
	Email  string
	Amount string
}

// NewReceipt builds the receipt of a recorded lead.
func NewReceipt(l leads.Lead) *Receipt {
	return &Receipt{
		ID:     l.ID,
		Name:   l.Name,
		Email:  l.Email,
		Amount: portfolio.FormatCurrency(l.Amount),
	}
}
