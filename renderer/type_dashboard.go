package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/capnow/portfolio"
)

// Stat is a single dashboard figure.
type Stat struct {
	Label   string `json:"label"`   // Short name of the figure.
	Caption string `json:"caption"` // What the figure means.
	Value   string `json:"value"`
	Sub     string `json:"sub,omitempty"` // Optional context shown under the value.
}

// Bar is a progress bar, Fraction is the unclamped value it represents.
type Bar struct {
	Title    string  `json:"title"`
	Fraction float64 `json:"fraction"`
	Width    string  `json:"width"` // Displayed fill, clamped to [0%, 100%].
	Gauge    string  `json:"gauge"`
	Hint     string  `json:"hint"`
}

// Summary is the descriptive part of the dashboard.
type Summary struct {
	Deals            int    `json:"deals"`
	Renewals         string `json:"renewals"`
	DefaultsReserved string `json:"defaultsReserved"`
	Industries       string `json:"industries,omitempty"`
	AverageTicket    string `json:"averageTicket,omitempty"`
	TypicalDuration  string `json:"typicalDuration,omitempty"`
}

// Dashboard is the view model of the investor dashboard.
type Dashboard struct {
	Label       string  `json:"label,omitempty"`
	Capital     []Stat  `json:"capital"`     // capital posture
	Performance []Stat  `json:"performance"` // performance and risk
	Bars        []Bar   `json:"bars"`
	Summary     Summary `json:"summary"`
}

// NewDashboard builds the dashboard of a snapshot.
//
// m must have been derived from s, see portfolio.DeriveSnapshotMetrics.
func NewDashboard(s portfolio.PortfolioSnapshot, m portfolio.DerivedMetrics) *Dashboard {
	cur := portfolio.FormatCurrency
	pct := portfolio.FormatPercent

	split := fmt.Sprintf("%s principal, %s yield", cur(s.CollectedPrincipal), cur(s.CollectedYield))
	renewals := fmt.Sprintf("%d of %d", s.RenewalCount, s.DealCount)

	d := &Dashboard{
		Label: s.Label,
		Capital: []Stat{
			{
				Label:   "Committed Capital",
				Caption: "Total investor money allocated to this fund.",
				Value:   cur(s.CommittedCapital),
				Sub:     "Target fund size",
			},
			{
				Label:   "Capital Deployed",
				Caption: "Amount currently placed into deals.",
				Value:   cur(s.DeployedCapital),
				Sub:     pct(m.DeploymentFraction, 0) + " deployed",
			},
			{
				Label:   "Collected Back",
				Caption: "Cash already received (principal + yield).",
				Value:   cur(m.CollectedTotal),
				Sub:     split,
			},
			{
				Label:   "Outstanding Principal",
				Caption: "Still in active positions; expected to return as deals mature.",
				Value:   cur(s.OutstandingPrincipal),
				Sub:     "Open exposure in current cycle",
			},
		},
		Performance: []Stat{
			{
				Label:   "Realized Profit (to date)",
				Caption: "Actual profit collected to date (excludes principal).",
				Value:   cur(m.RealizedProfit),
				Sub:     "Realized ROI: " + pct(m.RealizedROIFraction, 1),
			},
			{
				Label:   "Run-rate Yield (30d annualized)",
				Caption: "If the last 30 days continued for a full year, estimated annualized yield.",
				Value:   pct(s.RunRateAnnualized, 0),
				Sub:     "Illustrative; not a promise",
			},
			{
				Label:   "Defaults Reserved",
				Caption: "Capital set aside for deals expected not to repay (fully reserved inside returns).",
				Value:   reservedDeals(s.ReservedDefaultDeals, cur(s.ReservedDefaultAmount)),
				Sub:     pct(m.DefaultsFractionOfDeployed, 1) + " of deployed",
			},
			{
				Label:   "Renewals",
				Caption: "Deals extended and reinvested, often at higher effective yield.",
				Value:   renewals,
				Sub:     "Extensions that reinvest at higher yield",
			},
		},
		Bars: []Bar{
			newBar("Deployment Progress", m.DeploymentFraction,
				fmt.Sprintf("%s of %s deployed", cur(s.DeployedCapital), cur(s.CommittedCapital))),
			newBar("Collections Progress", m.CollectionsFraction,
				fmt.Sprintf("%s collected back (%s)", cur(m.CollectedTotal), split)),
		},
		Summary: Summary{
			Deals:            s.DealCount,
			Renewals:         renewals,
			DefaultsReserved: cur(s.ReservedDefaultAmount),
			AverageTicket:    s.AverageTicket,
			TypicalDuration:  s.TypicalDuration,
		},
	}

	industries := make([]string, 0, len(s.Industries))
	for _, i := range s.Industries {
		industries = append(industries, i.Name+" "+pct(i.Fraction, 0))
	}
	d.Summary.Industries = strings.Join(industries, ", ")
	return d
}

// reservedDeals reads "1 deal • $3,200", the deal count is omitted when unknown.
func reservedDeals(deals int, amount string) string {
	switch deals {
	case 0:
		return amount
	case 1:
		return "1 deal • " + amount
	default:
		return fmt.Sprintf("%d deals • %s", deals, amount)
	}
}

func newBar(title string, fraction float64, hint string) Bar {
	return Bar{
		Title:    title,
		Fraction: fraction,
		Width:    portfolio.FormatPercent(fill(fraction), 1),
		Gauge:    gauge(fraction),
		Hint:     hint,
	}
}

const gaugeCells = 20

// fill is the displayed part of a bar.
func fill(fraction float64) float64 {
	if math.IsNaN(fraction) {
		return 0
	}
	return portfolio.Clamp(fraction, 0, 1)
}

// gauge draws a fraction as a fixed width text bar.
func gauge(fraction float64) string {
	n := int(math.Round(fill(fraction) * gaugeCells))
	return strings.Repeat("█", n) + strings.Repeat("░", gaugeCells-n)
}
