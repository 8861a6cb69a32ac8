// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	submissionqueue "github.com/kestrelrobotics/matchbook/internal/adapters/mq/queue"
	workerpool "github.com/kestrelrobotics/matchbook/internal/adapters/mq/worker"
	"github.com/kestrelrobotics/matchbook/internal/adapters/repository"
	"github.com/kestrelrobotics/matchbook/internal/adapters/results"
	"github.com/kestrelrobotics/matchbook/internal/domain/dedupe"
	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/scoring"
	"github.com/kestrelrobotics/matchbook/internal/domain/stats"
	"github.com/kestrelrobotics/matchbook/internal/domain/validate"
	"github.com/kestrelrobotics/matchbook/internal/season"
	"github.com/kestrelrobotics/matchbook/pkg/logger"
	"github.com/kestrelrobotics/matchbook/pkg/metrics"
)

// Service implements the API dependencies for the scouting system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	queue      submissionqueue.Queue
	calculator *scoring.Calculator
	engine     *validate.Engine
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	season      *season.Config
	provider    results.Provider

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithSeason sets the season configuration driving scoring and validation.
func WithSeason(cfg *season.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.season = cfg
		}
	}
}

// WithResultsProvider sets the official results source used by validation.
// Without one, validation requests fail with ErrNoResultsProvider.
func WithResultsProvider(p results.Provider) Option {
	return func(s *Service) {
		s.provider = p
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10_000,
		dedupeSize:  50_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.season == nil {
		s.season = season.Default()
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scouting service...")

	s.store = repository.NewMemStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = submissionqueue.NewInMemoryQueue(
		submissionqueue.WithCapacity(s.queueSize),
	)
	s.calculator = scoring.NewCalculator(
		scoring.WithPointTable(s.season.PointTable()),
	)
	s.engine = validate.NewEngine(s.season)

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s.calculator, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "scouting service started",
		logger.String("season", s.season.Name),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service: the queue is closed and workers
// drain what is already enqueued before exiting.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping scouting service...")

	if s.workerPool != nil {
		if err := s.workerPool.Shutdown(ctx); err != nil {
			s.logger.Error(ctx, "worker pool shutdown", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "scouting service stopped")
}

// SeenAndRecord atomically checks if a submission id was seen and records
// it if not. Returns true if the submission was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordSubmissionDuplicate()
	}
	return seen
}

// Unrecord removes a submission id from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a scout submission for asynchronous processing.
func (s *Service) Enqueue(ctx context.Context, sub model.Submission) bool {
	ok := s.queue.Enqueue(ctx, sub)
	if !ok {
		s.logger.Warn(ctx, "submission rejected by queue",
			logger.String("submissionID", sub.ID),
			logger.Int("queueLength", s.queue.Len(ctx)),
		)
	}
	return ok
}

// TeamStats aggregates all stored records for a team.
func (s *Service) TeamStats(ctx context.Context, teamNumber int) (stats.TeamStats, error) {
	records, err := s.store.TeamRecords(ctx, teamNumber)
	if err != nil {
		return stats.TeamStats{}, fmt.Errorf("team %d records: %w", teamNumber, err)
	}
	return stats.Aggregate(teamNumber, records), nil
}

// TeamRecords returns the raw stored records for a team.
func (s *Service) TeamRecords(ctx context.Context, teamNumber int) ([]model.MatchRecord, error) {
	return s.store.TeamRecords(ctx, teamNumber)
}

// MatchValidation fetches the official result for a match and compares the
// alliance's scouted records against it.
func (s *Service) MatchValidation(ctx context.Context, matchKey string, alliance model.Alliance) (validate.Report, error) {
	if s.provider == nil {
		return validate.Report{}, ErrNoResultsProvider
	}

	all, err := s.store.MatchRecords(ctx, matchKey)
	if err != nil {
		return validate.Report{}, fmt.Errorf("match %s records: %w", matchKey, err)
	}
	records := make([]model.MatchRecord, 0, len(all))
	for _, rec := range all {
		if rec.Alliance == alliance {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return validate.Report{}, fmt.Errorf("%w: no scouted records for %s alliance in %s", ErrNotFound, alliance, matchKey)
	}

	official, err := s.provider.Match(ctx, matchKey)
	if err != nil {
		return validate.Report{}, fmt.Errorf("official result for %s: %w", matchKey, err)
	}

	categories := s.engine.Compare(records, official.Alliances[alliance].Breakdown)
	report := validate.Report{
		MatchKey:   matchKey,
		Alliance:   alliance,
		Severity:   validate.Overall(categories),
		Categories: categories,
		Teams:      s.engine.ValidateRoster(records, alliance, official.Rosters()),
	}

	for _, cat := range categories {
		for _, cmp := range cat.Comparisons {
			metrics.RecordValidationComparison()
			if cmp.Severity > validate.SeverityNone {
				metrics.RecordValidationDiscrepancy(cmp.Severity.String())
			}
		}
	}

	s.logger.Debug(ctx, "validation report built",
		logger.String("matchKey", matchKey),
		logger.String("alliance", string(alliance)),
		logger.String("severity", report.Severity.String()),
	)
	return report, nil
}

// LiveScore scores a counter record for live display without persisting.
func (s *Service) LiveScore(_ context.Context, rec model.CounterRecord) model.ScoringResult {
	return s.calculator.Score(rec)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	out := map[string]any{
		"started":     s.started,
		"season":      s.season.Name,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		recordCount := s.store.Count(ctx)
		teams, _ := s.store.Teams(ctx)

		out["queueLength"] = queueLen
		out["totalRecords"] = recordCount
		out["totalTeams"] = len(teams)

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateRecordsTotal(recordCount)
		metrics.UpdateTeamsTotal(len(teams))
	}

	return out
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
