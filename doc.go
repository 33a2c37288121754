// Package portfolio derives the display metrics of a business-lending fund.
//
// It is a small, stateless engine: callers hand it immutable values and get
// fresh values back, so it can be shared by any number of concurrent page
// renders without coordination.
//
// The core functionalities include:
//   - Snapshot Metrics: turning a PortfolioSnapshot (committed, deployed and
//     collected capital, reserves, deal counts) into DerivedMetrics such as the
//     deployment, collections and realized ROI fractions.
//   - Campaign Progress: turning a live ProgressState (committed vs target)
//     into a progress fraction clamped to [0, 1] for a visual bar, while the
//     raw ratio stays available for numeric display.
//   - Formatting: a single fixed convention for whole-unit USD amounts and
//     percentages, rounding half away from zero.
//   - Boundary decoding: strictly typed JSON decoding of snapshots and
//     progress documents, validated before any arithmetic happens.
//
// The only failure mode is *InvalidInputError, returned when an input breaks
// one of the snapshot invariants (a non-positive committed capital first of
// all). Every other degenerate input (nothing deployed, no renewals, an
// over-subscribed campaign) has a defined, non-erroring output.
//
// This package serves as the foundational logic for the `capnow` command-line
// tool and its HTTP server.
package portfolio
