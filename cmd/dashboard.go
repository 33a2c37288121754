package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/capnow/portfolio"
	"github.com/capnow/portfolio/config"
	"github.com/capnow/portfolio/renderer"
	"github.com/google/subcommands"
)

// dashboardCmd holds the flags for the 'dashboard' subcommand.
type dashboardCmd struct {
	snapshot string
	json     bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the investor dashboard of a snapshot" }
func (*dashboardCmd) Usage() string {
	return `capnow dashboard [-s <snapshot.json>] [-json]

  Derives the portfolio metrics of a snapshot and displays the investor dashboard.
  Without -s, the snapshot file is read from CAPNOW_SNAPSHOT_FILE, and the
  illustrative "Month 9" preview snapshot is used if none is configured.

Usage Examples:
# Display the preview dashboard.
$ capnow dashboard

# Print the derived metrics of a report as JSON.
$ capnow dashboard -s month-10.json -json

`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "s", os.Getenv(config.EnvSnapshotFile), "Snapshot file (JSON). Empty for the preview snapshot.")
	f.BoolVar(&c.json, "json", false, "print the snapshot and its metrics as JSON")
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := portfolio.LoadSnapshot(c.snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	m, err := portfolio.DeriveSnapshotMetrics(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deriving metrics: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		err := enc.Encode(struct {
			Snapshot portfolio.PortfolioSnapshot `json:"snapshot"`
			Metrics  portfolio.DerivedMetrics    `json:"metrics"`
		}{s, m})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding metrics: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderDashboard(renderer.NewDashboard(s, m)))
	return subcommands.ExitSuccess
}
