package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/capnow/portfolio"
	"github.com/capnow/portfolio/config"
	"github.com/capnow/portfolio/feed"
	"github.com/capnow/portfolio/leads"
	"github.com/capnow/portfolio/logger"
	"github.com/capnow/portfolio/scheduler"
	"github.com/capnow/portfolio/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the landing page, the dashboard and their API" }
func (*serveCmd) Usage() string {
	return `capnow serve [-port <port>]

  Starts the HTTP server. The server is configured by the CAPNOW_* environment
  variables, or a .env file in the working directory. See 'capnow topic configuration'.

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "listen port, overrides CAPNOW_PORT")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.port != 0 {
		cfg.Port = c.port
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	log.Info().Msg("Starting Capnow portfolio server")

	snapshot, err := portfolio.LoadSnapshot(cfg.SnapshotFile)
	if err != nil {
		log.Error().Err(err).Str("file", cfg.SnapshotFile).Msg("Failed to load snapshot")
		return subcommands.ExitFailure
	}
	// the dashboard is never served against an invalid snapshot.
	if err := snapshot.Validate(); err != nil {
		log.Error().Err(err).Str("file", cfg.SnapshotFile).Msg("Invalid snapshot")
		return subcommands.ExitFailure
	}

	// Initialize database
	db, err := leads.Open(cfg.DBPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		return subcommands.ExitFailure
	}
	defer db.Close()

	// Initialize scheduler
	sched := scheduler.New(log)
	var progress server.ProgressSource
	if cfg.ProgressSource != "" {
		fd, err := feed.New(cfg.ProgressSource, feed.WithLogger(log))
		if err != nil {
			log.Error().Err(err).Msg("Failed to create progress feed")
			return subcommands.ExitFailure
		}
		if err := sched.RunNow(fd); err != nil {
			log.Warn().Err(err).Msg("Initial progress unavailable, displaying the initial progress")
		}
		if err := sched.AddJob(cfg.ProgressSchedule, fd); err != nil {
			log.Error().Err(err).Str("schedule", cfg.ProgressSchedule).Msg("Failed to register progress job")
			return subcommands.ExitFailure
		}
		progress = fd
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:     cfg.Port,
		Log:      log,
		Snapshot: snapshot,
		Progress: progress,
		Leads:    leads.NewSQLiteStore(db),
		DevMode:  cfg.DevMode,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
	return subcommands.ExitSuccess
}
