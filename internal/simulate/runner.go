package simulate

import (
	"context"
	"io"
	"time"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/stats"
	"github.com/kestrelrobotics/matchbook/pkg/logger"
)

const (
	retryDelay   = 250 * time.Millisecond
	maxRetries   = 5
	settleDelay  = 500 * time.Millisecond
	settleChecks = 20
)

// Options configures one simulation run.
type Options struct {
	EventKey string
	Matches  int
	Teams    []int
	Seed     int64
	Colors   bool
}

// Runner drives a full simulated event against a live service.
type Runner struct {
	client *Client
	gen    *Generator
	opts   Options
	logger logger.Logger
}

// NewRunner builds a runner for the given service address and options.
func NewRunner(addr string, opts Options) (*Runner, error) {
	gen, err := NewGenerator(opts.Teams, opts.Seed)
	if err != nil {
		return nil, err
	}
	return &Runner{
		client: NewClient(addr),
		gen:    gen,
		opts:   opts,
		logger: logger.Get().Named("scoutsim"),
	}, nil
}

// Run generates and submits every match, waits for the pipeline to settle,
// then writes the team stats report to w.
func (r *Runner) Run(ctx context.Context, w io.Writer) error {
	submitted := 0
	for match := 1; match <= r.opts.Matches; match++ {
		for _, sub := range r.gen.Match(r.opts.EventKey, match) {
			if err := r.submitWithRetry(ctx, sub); err != nil {
				return err
			}
			submitted++
		}
	}
	r.logger.Info(ctx, "all submissions sent",
		logger.Int("matches", r.opts.Matches),
		logger.Int("submissions", submitted),
	)

	teamStats, err := r.collectStats(ctx)
	if err != nil {
		return err
	}
	return WriteReport(w, teamStats, r.opts.Colors)
}

// submitWithRetry retries on backpressure with a short delay; the service
// rolls back the idempotency mark on 429, so a retry is safe.
func (r *Runner) submitWithRetry(ctx context.Context, sub model.Submission) error {
	for attempt := 0; ; attempt++ {
		accepted, err := r.client.Submit(ctx, sub)
		if err != nil {
			return err
		}
		if accepted {
			return nil
		}
		if attempt >= maxRetries {
			return ErrSubmit
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}

// collectStats polls until every team's match count stops growing, then
// returns the final stats per team.
func (r *Runner) collectStats(ctx context.Context) ([]stats.TeamStats, error) {
	var prevTotal int
	for i := 0; i < settleChecks; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(settleDelay):
		}

		total := 0
		out := make([]stats.TeamStats, 0, len(r.opts.Teams))
		for _, team := range r.opts.Teams {
			ts, err := r.client.TeamStats(ctx, team)
			if err != nil {
				return nil, err
			}
			out = append(out, ts)
			total += ts.MatchCount
		}
		if total > 0 && total == prevTotal {
			return out, nil
		}
		prevTotal = total
	}
	return nil, ErrFetch
}
