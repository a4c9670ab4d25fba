package batch

// Result is the aggregate outcome of one batch run.
type Result struct {
	// BatchID uniquely identifies the run.
	BatchID string

	// Total is the number of jobs submitted.
	Total int

	// Completed is the number of jobs that ran to a terminal state
	// (succeeded or failed). Skipped jobs are not counted.
	Completed int

	// Succeeded is the number of jobs whose action returned nil.
	Succeeded int

	// Skipped is the number of jobs that never started because the
	// batch was cancelled first.
	Skipped int

	// Cancelled reports whether the batch was cancelled before all
	// jobs started.
	Cancelled bool
}

// Failed returns the number of jobs that ran but returned an error.
func (r *Result) Failed() int {
	return r.Completed - r.Succeeded
}
