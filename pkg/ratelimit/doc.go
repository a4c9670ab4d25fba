// Package ratelimit provides a blocking, dual-quota rate limiter for LLM requests.
//
// # Overview
//
// The ratelimit package throttles outbound API calls against independent
// rolling-window quotas that must all admit a request before it proceeds.
// The canonical configuration tracks two quotas per provider:
//
//   - requests: number of API calls per window (requests per minute)
//   - tokens: weighted cost per window (tokens per minute)
//
// Unlike a token bucket, the limiter records each admission as a ledger
// entry that expires exactly one window after it was made, so usage is
// measured over a true rolling window with no reset spike.
//
// # Blocking Contract
//
// Acquire blocks the calling goroutine until every requested quota has
// headroom. There is no intrinsic timeout: a call can wait as long as the
// real quota takes to free up. Waiters sleep until the earliest ledger
// expiry that could unblock them (never less than 100ms) and are woken
// early when a limit is raised through UpdateLimit.
//
// # Dynamic Limits
//
// UpdateLimit replaces a quota's limit at any time without resetting the
// ledger. Lowering a limit below the current outstanding usage does not
// evict entries and does not deadlock waiters; they simply wait until
// enough entries expire.
//
// # Usage
//
//	limiter, err := ratelimit.NewPerMinute(60, 60000)
//	if err != nil {
//	    return err
//	}
//
//	// Blocks until both quotas admit.
//	err = limiter.Acquire(map[string]int64{
//	    ratelimit.QuotaRequests: 1,
//	    ratelimit.QuotaTokens:   estimatedTokens,
//	})
//
//	// Configuration change takes effect for all waiters.
//	err = limiter.UpdateLimit(ratelimit.QuotaTokens, 90000)
//
// # Thread Safety
//
// All operations are safe for concurrent use. A single mutex guards the
// full limiter state; admission checks, ledger pruning, and limit updates
// never run concurrently with each other.
package ratelimit
