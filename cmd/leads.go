package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/capnow/portfolio/config"
	"github.com/capnow/portfolio/leads"
	"github.com/capnow/portfolio/renderer"
	"github.com/google/subcommands"
)

// dbPathFlag registers the common -db flag.
func dbPathFlag(f *flag.FlagSet, p *string) {
	def := os.Getenv(config.EnvDBPath)
	if def == "" {
		def = config.DefaultDBPath
	}
	f.StringVar(p, "db", def, "SQLite database of the leads")
}

// leadCmd holds the flags for the 'lead' subcommand.
type leadCmd struct {
	name   string
	email  string
	amount string
	source string
	db     string
}

func (*leadCmd) Name() string     { return "lead" }
func (*leadCmd) Synopsis() string { return "record an investor lead" }
func (*leadCmd) Usage() string {
	return `capnow lead -name <name> -email <email> -amount <amount> [-db <leads.db>]

  Records the interest of a prospective investor, as the landing page form does.
  The amount is the indicated allocation, "25000" or "$25,000".

`
}

func (c *leadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "full name")
	f.StringVar(&c.email, "email", "", "email address")
	f.StringVar(&c.amount, "amount", "", "indicated allocation")
	f.StringVar(&c.source, "source", "cli", "where the lead comes from")
	dbPathFlag(f, &c.db)
}

func (c *leadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := leads.NewLead(c.name, c.email, c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	l.Source = c.source

	db, err := leads.Open(c.db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leads database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	l, err = leads.NewSQLiteStore(db).Insert(ctx, l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording lead: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderLeadReceipt(renderer.NewReceipt(l)))
	return subcommands.ExitSuccess
}

// leadsCmd holds the flags for the 'leads' subcommand.
type leadsCmd struct {
	db    string
	limit int
}

func (*leadsCmd) Name() string     { return "leads" }
func (*leadsCmd) Synopsis() string { return "list recorded investor leads" }
func (*leadsCmd) Usage() string {
	return `capnow leads [-db <leads.db>] [-n <count>]

  Lists the recorded leads, newest first, with their count and total indicated allocation.

`
}

func (c *leadsCmd) SetFlags(f *flag.FlagSet) {
	dbPathFlag(f, &c.db)
	f.IntVar(&c.limit, "n", 20, "maximum number of leads to list, 0 for all")
}

func (c *leadsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := leads.Open(c.db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leads database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	store := leads.NewSQLiteStore(db)
	ls, err := store.List(ctx, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing leads: %v\n", err)
		return subcommands.ExitFailure
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading lead stats: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderLeads(ls, stats))
	return subcommands.ExitSuccess
}
