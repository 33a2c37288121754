package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/capnow/portfolio"
	"github.com/capnow/portfolio/config"
	"github.com/capnow/portfolio/feed"
	"github.com/capnow/portfolio/renderer"
	"github.com/google/subcommands"
)

type progressCmd struct {
	source  string
	current float64
	target  float64
	output  string
}

func (*progressCmd) Name() string     { return "progress" }
func (*progressCmd) Synopsis() string { return "display or write the campaign progress" }
func (*progressCmd) Usage() string {
	return `capnow progress [-source <url|file>]
capnow progress -set-current <amount> [-set-target <amount>] [-o <progress.json>]

  Without -set-* flags, reads the progress document from -source (defaults to
  CAPNOW_PROGRESS_SOURCE) and displays the campaign progress bar. Without a
  source, the initial progress is displayed.

  With -set-current or -set-target, writes a progress document to -o, or to the
  standard output. This is the document served as /progress.json and read by
  the progress feed.

Usage Examples:
# Record 42k committed out of the default 100k target.
$ capnow progress -set-current 42000 -o progress.json

`
}

func (c *progressCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", os.Getenv(config.EnvProgressSource), "URL or file of the progress document")
	f.Float64Var(&c.current, "set-current", 0, "amount committed so far")
	f.Float64Var(&c.target, "set-target", portfolio.DefaultTarget, "campaign target")
	f.StringVar(&c.output, "o", "", "file to write the progress document to, standard output by default")
}

func (c *progressCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "set-current" || fl.Name == "set-target" {
			set = true
		}
	})

	if set {
		return c.write()
	}

	p := portfolio.InitialProgress()
	if c.source != "" {
		fd, err := feed.New(c.source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading progress: %v\n", err)
			return subcommands.ExitFailure
		}
		ctx, cancel := context.WithTimeout(ctx, feed.DefaultTimeout)
		defer cancel()
		if err := fd.Refresh(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading progress: %v\n", err)
			return subcommands.ExitFailure
		}
		p = fd.State()
	}

	printMarkdown(renderer.RenderProgress(renderer.NewProgress(p)))
	return subcommands.ExitSuccess
}

// write writes the progress document from the flags.
func (c *progressCmd) write() subcommands.ExitStatus {
	p := portfolio.ProgressState{Current: c.current, Target: c.target}

	if c.output == "" {
		if err := portfolio.EncodeProgress(stdout, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding progress: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	// write to a temporary file first, the document may be served while we write it.
	tmp := fmt.Sprintf("%s.%d.tmp", c.output, time.Now().UnixNano())
	out, err := os.Create(tmp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating progress file: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := portfolio.EncodeProgress(out, p); err != nil {
		out.Close()
		os.Remove(tmp)
		fmt.Fprintf(os.Stderr, "Error encoding progress: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		fmt.Fprintf(os.Stderr, "Error writing progress file: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.Rename(tmp, c.output); err != nil {
		os.Remove(tmp)
		fmt.Fprintf(os.Stderr, "Error writing progress file: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Successfully wrote progress to %s\n", c.output)
	return subcommands.ExitSuccess
}
