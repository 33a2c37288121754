package portfolio

// IndustryShare is the share of deployed capital in one industry.
type IndustryShare struct {
	Name     string  `json:"name"`
	Fraction float64 `json:"fraction"`
}

// PortfolioSnapshot is a point-in-time report of the fund.
//
// It is a plain value, built fresh from configuration or a report at render
// time and never mutated afterwards.
type PortfolioSnapshot struct {
	// Label names the snapshot for display, e.g. "Month 9".
	Label string `json:"label,omitempty"`

	CommittedCapital      float64 `json:"committedCapital"`
	DeployedCapital       float64 `json:"deployedCapital"`
	CollectedPrincipal    float64 `json:"collectedPrincipal"`
	CollectedYield        float64 `json:"collectedYield"`
	OutstandingPrincipal  float64 `json:"outstandingPrincipal"`
	ReservedDefaultAmount float64 `json:"reservedDefaultAmount"`
	// ReservedDefaultDeals is the number of deals the reserve is held against.
	ReservedDefaultDeals int `json:"reservedDefaultDeals,omitempty"`

	DealCount    int `json:"dealCount"`
	RenewalCount int `json:"renewalCount"`

	// RunRateAnnualized is a precomputed annualized yield, as a fraction.
	RunRateAnnualized float64 `json:"runRateAnnualized"`

	// Descriptive fields, displayed as is.
	Industries      []IndustryShare `json:"industries,omitempty"`
	AverageTicket   string          `json:"averageTicket,omitempty"`
	TypicalDuration string          `json:"typicalDuration,omitempty"`
}

// DerivedMetrics holds every value computed from a snapshot and a progress state.
//
// Values keep full float64 precision, rounding is a display concern.
type DerivedMetrics struct {
	CollectedTotal             float64 `json:"collectedTotal"`
	DeploymentFraction         float64 `json:"deploymentFraction"`
	CollectionsFraction        float64 `json:"collectionsFraction"`
	RealizedProfit             float64 `json:"realizedProfit"`
	RealizedROIFraction        float64 `json:"realizedRoiFraction"`
	DefaultsFractionOfDeployed float64 `json:"defaultsFractionOfDeployed"`
	RenewalFraction            float64 `json:"renewalFraction"`
	ProgressFraction           float64 `json:"progressFraction"`
}

// DeriveSnapshotMetrics computes the snapshot part of DerivedMetrics.
//
// It returns an *InvalidInputError if the snapshot is not valid, in
// particular if the committed capital is not positive. ProgressFraction is
// left to zero, use Derive to fill it.
func DeriveSnapshotMetrics(s PortfolioSnapshot) (DerivedMetrics, error) {
	if err := s.Validate(); err != nil {
		return DerivedMetrics{}, err
	}

	collected := s.CollectedPrincipal + s.CollectedYield
	m := DerivedMetrics{
		CollectedTotal:     collected,
		DeploymentFraction: s.DeployedCapital / s.CommittedCapital,
		// The denominator includes the yield: collected back over what could
		// have been collected back.
		CollectionsFraction: collected / (s.CommittedCapital + s.CollectedYield),
		RealizedProfit:      s.CollectedYield,
		RealizedROIFraction: s.CollectedYield / s.CommittedCapital,
	}
	// nothing deployed means nothing in default.
	if s.DeployedCapital > 0 {
		m.DefaultsFractionOfDeployed = s.ReservedDefaultAmount / s.DeployedCapital
	}
	if s.DealCount > 0 {
		m.RenewalFraction = float64(s.RenewalCount) / float64(s.DealCount)
	}
	return m, nil
}

// Derive computes all DerivedMetrics from a snapshot and a campaign progress.
func Derive(s PortfolioSnapshot, p ProgressState) (DerivedMetrics, error) {
	m, err := DeriveSnapshotMetrics(s)
	if err != nil {
		return DerivedMetrics{}, err
	}
	m.ProgressFraction = DeriveProgressFraction(p)
	return m, nil
}

// PreviewSnapshot returns the illustrative "Month 9" snapshot shown on the
// investor dashboard preview.
func PreviewSnapshot() PortfolioSnapshot {
	return PortfolioSnapshot{
		Label:                 "Month 9",
		CommittedCapital:      100_000,
		DeployedCapital:       90_000,
		CollectedPrincipal:    72_000,
		CollectedYield:        24_500,
		OutstandingPrincipal:  18_000,
		ReservedDefaultAmount: 3_200,
		ReservedDefaultDeals:  1,
		DealCount:             13,
		RenewalCount:          2,
		RunRateAnnualized:     0.32,
		Industries: []IndustryShare{
			{Name: "Retail", Fraction: 0.28},
			{Name: "Services", Fraction: 0.24},
			{Name: "Logistics", Fraction: 0.22},
			{Name: "Healthcare", Fraction: 0.26},
		},
		AverageTicket:   "$10k–$15k",
		TypicalDuration: "4–6 months",
	}
}
