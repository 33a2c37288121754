// Package feed polls the progress document of the live campaign.
//
// A Feed always has a state to display: the initial portfolio.InitialProgress
// until a first document is read, then the last document read successfully.
// Failed reads are reported to the caller and leave the state untouched.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/capnow/portfolio"
)

// DefaultTimeout bounds a single scheduled refresh.
const DefaultTimeout = 10 * time.Second

// Feed holds the last known good progress of a source.
type Feed struct {
	source  string
	fields  Fields
	query   *query
	client  *http.Client
	timeout time.Duration
	log     zerolog.Logger

	mu      sync.RWMutex
	state   portfolio.ProgressState
	updated time.Time // zero until the first successful refresh
}

// Option configures a Feed.
type Option func(*Feed)

// WithClient sets the http client used for remote sources.
func WithClient(c *http.Client) Option { return func(f *Feed) { f.client = c } }

// WithFields sets where the counters are located in the document.
func WithFields(fields Fields) Option { return func(f *Feed) { f.fields = fields } }

// WithLogger sets the feed logger.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Feed) { f.log = l.With().Str("component", "feed").Logger() }
}

// WithTimeout sets the timeout of scheduled refreshes.
func WithTimeout(d time.Duration) Option { return func(f *Feed) { f.timeout = d } }

// New creates a Feed reading source, an http(s) URL or a local file.
//
// It fails if the configured Fields are not valid JSONPath expressions.
func New(source string, opts ...Option) (*Feed, error) {
	f := &Feed{
		source:  source,
		fields:  DefaultFields(),
		client:  &http.Client{Timeout: DefaultTimeout},
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
		state:   portfolio.InitialProgress(),
	}
	for _, opt := range opts {
		opt(f)
	}
	q, err := f.fields.compile()
	if err != nil {
		return nil, err
	}
	f.query = q
	return f, nil
}

// Source returns the URL or file the feed reads.
func (f *Feed) Source() string { return f.source }

// Refresh reads the source once and, on success, replaces the state.
func (f *Feed) Refresh(ctx context.Context) error {
	data, err := read(ctx, f.client, f.source)
	if err != nil {
		return fmt.Errorf("error reading progress from %q: %w", f.source, err)
	}
	p, err := f.query.parse(data)
	if err != nil {
		return fmt.Errorf("error parsing progress from %q: %w", f.source, err)
	}

	f.mu.Lock()
	f.state = p
	f.updated = time.Now().UTC()
	f.mu.Unlock()

	f.log.Debug().
		Float64("current", p.Current).
		Float64("target", p.Target).
		Msg("Progress refreshed")
	return nil
}

// State returns the last known good progress.
func (f *Feed) State() portfolio.ProgressState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// LastUpdated returns the time of the last successful refresh, zero if none.
func (f *Feed) LastUpdated() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.updated
}

// Name implements scheduler.Job.
func (f *Feed) Name() string { return "progress-feed" }

// Run implements scheduler.Job with a bounded refresh.
func (f *Feed) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	if err := f.Refresh(ctx); err != nil {
		f.log.Warn().Err(err).Msg("Keeping last known progress")
		return err
	}
	return nil
}
