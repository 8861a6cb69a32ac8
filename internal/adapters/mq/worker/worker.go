// Package worker processes queued submissions asynchronously: transform
// the raw action streams into a counter record, score it, and store the
// resulting match record.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/transform"
	"github.com/kestrelrobotics/matchbook/pkg/logger"
	"github.com/kestrelrobotics/matchbook/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 4
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Submission is what workers read off the queue.
type Submission = model.Submission

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Submission
}

// Scorer computes point values for a counter record.
type Scorer interface {
	Score(rec model.CounterRecord) model.ScoringResult
}

// Recorder persists finished match records.
type Recorder interface {
	Put(ctx context.Context, rec model.MatchRecord) error
}

// Worker consumes submissions until its context is canceled.
type Worker struct {
	queue    Queue
	scorer   Scorer
	recorder Recorder
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName names the worker for log attribution.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
			w.logger = logger.Get().Named(name)
		}
	}
}

// NewWorker creates a worker with configuration options.
func NewWorker(queue Queue, scorer Scorer, recorder Recorder, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		scorer:   scorer,
		recorder: recorder,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	subs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case sub, ok := <-subs:
			if !ok {
				return
			}
			if err := w.process(ctx, sub); err != nil {
				w.logger.Error(ctx, "error processing submission", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process transforms, scores, and stores one submission.
func (w *Worker) process(ctx context.Context, sub Submission) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	transformStart := time.Now()
	counters := transform.Transform(sub.Actions(), sub.Toggles)
	counters.Teleop.BreakdownSeconds = sub.BreakdownSeconds
	metrics.RecordTransformLatency(float64(time.Since(transformStart).Milliseconds()))

	rec := model.MatchRecord{
		ID:         uuid.NewString(),
		EventKey:   sub.EventKey,
		MatchKey:   sub.MatchKey,
		TeamNumber: sub.TeamNumber,
		Alliance:   sub.Alliance,
		ScoutName:  sub.ScoutName,
		Counters:   counters,
		Points:     w.scorer.Score(counters),
		RecordedAt: time.Now().UTC(),
	}
	if err := w.recorder.Put(ctx, rec); err != nil {
		metrics.RecordStoreError()
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "storing match record failed",
			logger.String("submissionID", sub.ID),
			logger.String("matchKey", sub.MatchKey),
			logger.Int("team", sub.TeamNumber),
			logger.Error(err),
		)
		return fmt.Errorf("store record for submission %s: %w", sub.ID, err)
	}

	metrics.RecordSubmissionProcessed()
	w.logger.Debug(ctx, "submission processed",
		logger.String("submissionID", sub.ID),
		logger.String("matchKey", sub.MatchKey),
		logger.Int("team", sub.TeamNumber),
		logger.Float64("totalPoints", rec.Points.TotalPoints),
	)
	return nil
}

// Pool manages a fixed set of workers.
type Pool struct {
	workers []*Worker
	queue   Queue

	logger logger.Logger
}

// NewPool creates a worker pool.
func NewPool(workerCount int, queue Queue, scorer Scorer, recorder Recorder) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}
	p := &Pool{
		workers: make([]*Worker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewWorker(queue, scorer, recorder, WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerActiveCount(workerCount)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop waits for all workers to finish, bounded per worker.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerActiveCount(0)
}

// Shutdown closes the queue and drains all workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}
