package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"deckfill/pkg/ratelimit"
)

// ErrAlreadyRan is returned when Run is called twice on the same Runner.
// A Runner tracks the state of exactly one batch.
var ErrAlreadyRan = errors.New("batch: runner has already run a batch")

// RunnerConfig contains configuration for a Runner.
type RunnerConfig struct {
	// Limiter is the shared rate limiter every job acquires from
	// before running its action. Required.
	Limiter *ratelimit.Limiter

	// Logger receives per-job debug and batch-level info logs.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics receives batch metrics. Optional.
	Metrics *Metrics
}

// Runner executes one batch of independent jobs. Each job runs in its own
// goroutine; effective throughput is bounded solely by the shared limiter.
//
// A Runner is single-use: create one per batch. Cancel may be called at
// any time, including before Run.
type Runner struct {
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	metrics *Metrics

	cancelled atomic.Bool
	started   atomic.Bool
}

// NewRunner creates a batch runner around a shared limiter.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Limiter == nil {
		return nil, errors.New("batch: limiter is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		limiter: cfg.Limiter,
		logger:  logger,
		metrics: cfg.Metrics,
	}, nil
}

// Cancel marks the batch as cancelled. Jobs that have not yet reached the
// limiter are skipped; jobs already past it run to completion. Safe to
// call from any goroutine, any number of times.
func (r *Runner) Cancel() {
	r.cancelled.Store(true)
}

// Run executes the batch and blocks until every started job has reached a
// terminal state and the final OnBatchDone callback has been delivered.
//
// Jobs are validated before anything starts: a non-positive cost or nil
// action is a programming error and fails the whole batch synchronously,
// mirroring the limiter's ErrInvalidArgument contract.
func (r *Runner) Run(ctx context.Context, jobs []Job, reporter Reporter) (*Result, error) {
	if !r.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRan
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	for i := range jobs {
		if jobs[i].Cost <= 0 {
			return nil, fmt.Errorf("%w: job %q has non-positive cost %d",
				ratelimit.ErrInvalidArgument, jobs[i].Name, jobs[i].Cost)
		}
		if jobs[i].Action == nil {
			return nil, fmt.Errorf("%w: job %q has no action",
				ratelimit.ErrInvalidArgument, jobs[i].Name)
		}
	}

	result := &Result{
		BatchID: uuid.NewString(),
		Total:   len(jobs),
	}

	r.logger.Info("batch started", "batch_id", result.BatchID, "jobs", result.Total)
	start := time.Now()

	// mu serializes reporter callbacks and guards the result counters;
	// jobs complete concurrently but events are delivered one at a time.
	var mu sync.Mutex
	reported := make(map[string]struct{})

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			r.runJob(ctx, job, result, reporter, &mu, reported)
		}(jobs[i])
	}
	wg.Wait()

	result.Cancelled = r.isCancelled(ctx) && result.Skipped > 0
	reporter.OnBatchDone(result.Succeeded, result.Total, result.Cancelled)

	if r.metrics != nil {
		r.metrics.observeBatch(time.Since(start))
	}
	r.logger.Info("batch finished",
		"batch_id", result.BatchID,
		"succeeded", result.Succeeded,
		"failed", result.Failed(),
		"skipped", result.Skipped,
		"cancelled", result.Cancelled,
		"elapsed", time.Since(start),
	)

	return result, nil
}

// runJob drives one job from pending to a terminal state.
func (r *Runner) runJob(ctx context.Context, job Job, result *Result, reporter Reporter, mu *sync.Mutex, reported map[string]struct{}) {
	// The cancellation check happens once, before the limiter: a job that
	// has acquired capacity runs to completion so the quota it consumed
	// is not wasted.
	if r.isCancelled(ctx) {
		mu.Lock()
		result.Skipped++
		mu.Unlock()
		r.count("skipped")
		return
	}

	if err := r.limiter.Acquire(map[string]int64{
		ratelimit.QuotaRequests: 1,
		ratelimit.QuotaTokens:   job.Cost,
	}); err != nil {
		// Unreachable for validated jobs; surface it like a job failure
		// rather than losing the batch.
		r.complete(job, err, result, reporter, mu, reported)
		return
	}

	// A job can be cancelled while blocked inside Acquire. Its quota is
	// already consumed and expires naturally, but the action never
	// starts, so the job counts as skipped rather than completed.
	if r.isCancelled(ctx) {
		mu.Lock()
		result.Skipped++
		mu.Unlock()
		r.count("skipped")
		return
	}

	r.logger.Debug("job admitted", "job", job.Name, "cost", job.Cost)
	err := job.Action(ctx)
	r.complete(job, err, result, reporter, mu, reported)
}

// complete records a terminal state and delivers serialized callbacks.
func (r *Runner) complete(job Job, err error, result *Result, reporter Reporter, mu *sync.Mutex, reported map[string]struct{}) {
	mu.Lock()
	defer mu.Unlock()

	result.Completed++
	if err == nil {
		result.Succeeded++
		r.count("succeeded")
	} else {
		r.count("failed")
		msg := err.Error()
		if _, seen := reported[msg]; !seen {
			reported[msg] = struct{}{}
			reporter.OnError(msg)
		}
		r.logger.Debug("job failed", "job", job.Name, "error", err)
	}

	reporter.OnProgress(result.Completed, result.Total)
}

func (r *Runner) isCancelled(ctx context.Context) bool {
	return r.cancelled.Load() || ctx.Err() != nil
}

func (r *Runner) count(status string) {
	if r.metrics != nil {
		r.metrics.countJob(status)
	}
}
