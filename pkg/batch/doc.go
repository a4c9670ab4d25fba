// Package batch runs independent jobs with throughput bounded by a shared
// rate limiter.
//
// # Overview
//
// A Runner dispatches every submitted job to its own goroutine; the number
// of concurrently executing jobs is deliberately unbounded. Admission
// control lives entirely in the shared ratelimit.Limiter that each job
// blocks on before running its action, so behavior is correct regardless
// of how many jobs are in flight and no separate concurrency cap needs to
// be kept in sync with the quota configuration.
//
// Per-job lifecycle:
//
//	Pending -> Waiting (on limiter) -> Running -> Succeeded | Failed
//	Pending -> Skipped (batch cancelled before the job started)
//
// # Progress Reporting
//
// Reporter callbacks are serialized by the runner even though jobs finish
// concurrently: OnProgress fires after every completion with a
// monotonically increasing completed count, identical error messages are
// reported through OnError at most once per batch, and OnBatchDone fires
// exactly once after the last started job finishes.
//
// # Cancellation
//
// Cancellation is cooperative. Cancel (or cancelling the context passed
// to Run) prevents any job that has not yet started its action from
// doing so — including jobs still blocked on the limiter, which skip
// their action once admitted. Jobs whose action is already running
// finish normally and still count toward the batch result.
package batch
