package ratelimit

import (
	"time"
)

// entry is one recorded admission in a window's ledger.
type entry struct {
	at     time.Time
	amount int64
}

// window tracks consumption for a single quota over a rolling time span.
//
// The ledger holds admissions in insertion order (oldest first) and
// outstanding is the incrementally maintained sum of their amounts.
// Entries older than the window duration are pruned before every
// admission decision, so outstanding only ever reflects usage inside
// the rolling window.
//
// A window is not safe for concurrent use on its own; the owning
// Limiter's mutex guards all access.
type window struct {
	limit       int64
	duration    time.Duration
	ledger      []entry
	outstanding int64
}

func newWindow(limit int64, duration time.Duration) *window {
	return &window{
		limit:    limit,
		duration: duration,
	}
}

// prune drops ledger entries that fell out of the rolling window and
// decrements outstanding accordingly.
func (w *window) prune(now time.Time) {
	cutoff := now.Add(-w.duration)

	i := 0
	for i < len(w.ledger) && w.ledger[i].at.Before(cutoff) {
		w.outstanding -= w.ledger[i].amount
		i++
	}

	if i == 0 {
		return
	}
	if i == len(w.ledger) {
		w.ledger = w.ledger[:0]
		return
	}
	// Shift survivors to the front so the backing array is reused.
	w.ledger = append(w.ledger[:0], w.ledger[i:]...)
}

// admits reports whether amount fits under the limit given the current
// outstanding usage. Caller must have pruned first.
func (w *window) admits(amount int64) bool {
	return w.outstanding+amount <= w.limit
}

// record appends an admission to the ledger.
func (w *window) record(now time.Time, amount int64) {
	w.ledger = append(w.ledger, entry{at: now, amount: amount})
	w.outstanding += amount
}

// nextExpiry returns how long until the oldest ledger entry expires.
// Returns 0 when the ledger is empty (nothing will expire; only a limit
// increase can create headroom).
func (w *window) nextExpiry(now time.Time) time.Duration {
	if len(w.ledger) == 0 {
		return 0
	}
	return w.ledger[0].at.Add(w.duration).Sub(now)
}
