package batch

import (
	"context"

	"github.com/google/uuid"
)

// Job is one independent unit of externally-facing work submitted as part
// of a batch: typically "fill the fields of one note".
//
// A job is owned exclusively by the runner from submission until it
// reaches a terminal state.
type Job struct {
	// ID uniquely identifies the job within a batch.
	ID string

	// Name is a human-readable reference (e.g. a note ID) used in logs
	// and error messages.
	Name string

	// Cost is the estimated token cost charged against the limiter's
	// token quota before the action runs. Must be positive.
	Cost int64

	// Action performs the external work: call the provider, parse the
	// response, write the fields. A nil return counts the job as
	// succeeded; any error marks it failed and is reported once per
	// distinct message.
	Action func(ctx context.Context) error
}

// NewJob creates a job with a generated ID.
func NewJob(name string, cost int64, action func(ctx context.Context) error) Job {
	return Job{
		ID:     uuid.NewString(),
		Name:   name,
		Cost:   cost,
		Action: action,
	}
}
