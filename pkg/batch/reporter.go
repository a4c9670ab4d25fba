package batch

import "log/slog"

// Reporter receives progress, error, and completion events from a batch
// run. Implementations do not need to be safe for concurrent use: the
// runner serializes all callbacks.
type Reporter interface {
	// OnProgress is invoked after every job completion (success or
	// failure) with the number of completed jobs so far and the batch
	// total. Skipped jobs do not trigger progress.
	OnProgress(completed, total int)

	// OnError is invoked for job failures, at most once per distinct
	// error message within a batch.
	OnError(message string)

	// OnBatchDone is invoked exactly once, after all started jobs have
	// reached a terminal state.
	OnBatchDone(succeeded, total int, cancelled bool)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) OnProgress(completed, total int)          {}
func (NopReporter) OnError(message string)                   {}
func (NopReporter) OnBatchDone(succeeded, total int, c bool) {}

// LogReporter writes batch events to a structured logger. It is the
// default surface for CLI runs.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter backed by the given logger.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) OnProgress(completed, total int) {
	r.logger.Info("batch progress", "completed", completed, "total", total)
}

func (r *LogReporter) OnError(message string) {
	r.logger.Error("job failed", "error", message)
}

func (r *LogReporter) OnBatchDone(succeeded, total int, cancelled bool) {
	r.logger.Info("batch done",
		"succeeded", succeeded,
		"total", total,
		"cancelled", cancelled,
	)
}
