package ratelimit

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Canonical quota names for the dual request/token configuration.
const (
	QuotaRequests = "requests"
	QuotaTokens   = "tokens"
)

// DefaultWindow is the rolling window duration for per-minute limits.
const DefaultWindow = time.Minute

// minWait is the floor for a waiter's sleep between admission attempts.
// It prevents busy-spinning when the computed wait is very short.
const minWait = 100 * time.Millisecond

// ErrInvalidArgument indicates a programming error in limiter usage:
// a non-positive amount or limit, or an unknown quota name. It is the
// only error the limiter returns; all other outcomes are blocking waits.
var ErrInvalidArgument = errors.New("ratelimit: invalid argument")

// WindowConfig configures a single quota window.
type WindowConfig struct {
	// Limit is the maximum total amount admissible within the window.
	// Must be positive.
	Limit int64

	// Duration is the rolling window span. Defaults to DefaultWindow.
	Duration time.Duration
}

// QuotaUsage is a point-in-time snapshot of one quota.
type QuotaUsage struct {
	// Used is the outstanding amount inside the rolling window.
	Used int64

	// Limit is the currently configured limit.
	Limit int64
}

// Limiter admits requests against multiple named rolling-window quotas.
// Every quota listed in an Acquire call must admit simultaneously before
// the caller may proceed; otherwise the caller blocks.
//
// A Limiter is created once per provider and shared by every concurrently
// running job for that provider.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	// wake is closed and replaced whenever a limit changes, rousing
	// sleeping waiters to re-check admission immediately.
	wake chan struct{}

	metrics *Metrics
}

// New creates a limiter with one window per named quota.
func New(quotas map[string]WindowConfig) (*Limiter, error) {
	if len(quotas) == 0 {
		return nil, fmt.Errorf("%w: at least one quota is required", ErrInvalidArgument)
	}

	windows := make(map[string]*window, len(quotas))
	for name, cfg := range quotas {
		if name == "" {
			return nil, fmt.Errorf("%w: quota name must not be empty", ErrInvalidArgument)
		}
		if cfg.Limit <= 0 {
			return nil, fmt.Errorf("%w: limit %d for quota %q must be positive", ErrInvalidArgument, cfg.Limit, name)
		}
		duration := cfg.Duration
		if duration <= 0 {
			duration = DefaultWindow
		}
		windows[name] = newWindow(cfg.Limit, duration)
	}

	return &Limiter{
		windows: windows,
		wake:    make(chan struct{}),
	}, nil
}

// NewPerMinute creates the canonical dual limiter used for LLM providers:
// a request count quota and a token cost quota, both over a one-minute
// rolling window.
func NewPerMinute(requestsPerMinute, tokensPerMinute int64) (*Limiter, error) {
	return New(map[string]WindowConfig{
		QuotaRequests: {Limit: requestsPerMinute},
		QuotaTokens:   {Limit: tokensPerMinute},
	})
}

// SetMetrics attaches Prometheus metrics to the limiter. Call before the
// limiter is shared across goroutines.
func (l *Limiter) SetMetrics(m *Metrics) {
	l.metrics = m
}

// Acquire blocks until every quota named in amounts has enough headroom,
// then records the amounts and returns. Admission is all-or-nothing: no
// quota is charged until all of them admit in the same check.
//
// Acquire can block indefinitely; it is bounded only by real quota reset
// time. It is intentionally not abortable mid-wait: cancellation is
// layered above the limiter by not calling Acquire for jobs that should
// no longer start.
//
// The only error returned is ErrInvalidArgument (non-positive amount or
// unknown quota), reported before any state is touched.
func (l *Limiter) Acquire(amounts map[string]int64) error {
	if len(amounts) == 0 {
		return fmt.Errorf("%w: no quotas requested", ErrInvalidArgument)
	}
	for name, amount := range amounts {
		if amount <= 0 {
			return fmt.Errorf("%w: amount %d for quota %q must be positive", ErrInvalidArgument, amount, name)
		}
		if _, ok := l.windows[name]; !ok {
			return fmt.Errorf("%w: unknown quota %q", ErrInvalidArgument, name)
		}
	}

	start := time.Now()

	for {
		l.mu.Lock()
		now := time.Now()

		admitted := true
		for name, amount := range amounts {
			w := l.windows[name]
			w.prune(now)
			if !w.admits(amount) {
				admitted = false
			}
		}

		if admitted {
			for name, amount := range amounts {
				l.windows[name].record(now, amount)
			}
			l.recordAdmissionLocked(amounts, time.Since(start))
			l.mu.Unlock()
			return nil
		}

		// Wait until the last blocking quota could have headroom: the
		// maximum over blocking quotas of its oldest entry's expiry.
		wait := minWait
		for name, amount := range amounts {
			w := l.windows[name]
			if w.admits(amount) {
				continue
			}
			// An empty blocking ledger means the amount exceeds the
			// limit outright; nothing expires, so poll on the floor
			// interval until UpdateLimit raises the limit.
			if d := w.nextExpiry(now); d > wait {
				wait = d
			}
		}

		wake := l.wake
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-wake:
			timer.Stop()
		}
	}
}

// UpdateLimit atomically replaces the limit for one quota. The new limit
// applies to the next admission check of every waiter; the ledger is not
// reset and no entries are evicted early when the limit decreases.
func (l *Limiter) UpdateLimit(quota string, limit int64) error {
	if limit <= 0 {
		return fmt.Errorf("%w: limit %d for quota %q must be positive", ErrInvalidArgument, limit, quota)
	}

	l.mu.Lock()
	w, ok := l.windows[quota]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: unknown quota %q", ErrInvalidArgument, quota)
	}
	w.limit = limit
	if l.metrics != nil {
		l.metrics.setLimit(quota, limit)
	}

	// Rouse sleepers so a raised limit takes effect without waiting out
	// their current sleep.
	close(l.wake)
	l.wake = make(chan struct{})
	l.mu.Unlock()

	return nil
}

// Usage returns a snapshot of every quota's outstanding usage and limit.
// Entries that expired before the call are not counted.
func (l *Limiter) Usage() map[string]QuotaUsage {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	usage := make(map[string]QuotaUsage, len(l.windows))
	for name, w := range l.windows {
		w.prune(now)
		usage[name] = QuotaUsage{Used: w.outstanding, Limit: w.limit}
	}
	return usage
}

// recordAdmissionLocked updates metrics after a successful admission.
// Caller must hold l.mu.
func (l *Limiter) recordAdmissionLocked(amounts map[string]int64, waited time.Duration) {
	if l.metrics == nil {
		return
	}
	l.metrics.observeAcquire(waited)
	for name := range amounts {
		l.metrics.setOutstanding(name, l.windows[name].outstanding)
		l.metrics.addAdmitted(name, amounts[name])
	}
}
