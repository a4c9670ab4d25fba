package ratelimit

import (
	"testing"
	"time"
)

func TestWindow_RecordAndPrune(t *testing.T) {
	w := newWindow(100, time.Minute)
	now := time.Now()

	w.record(now, 10)
	w.record(now, 20)

	if w.outstanding != 30 {
		t.Errorf("Expected outstanding 30, got %d", w.outstanding)
	}

	// Nothing expired yet
	w.prune(now.Add(30 * time.Second))
	if w.outstanding != 30 {
		t.Errorf("Expected outstanding 30 after partial window, got %d", w.outstanding)
	}

	// Everything expired
	w.prune(now.Add(61 * time.Second))
	if w.outstanding != 0 {
		t.Errorf("Expected outstanding 0 after window elapsed, got %d", w.outstanding)
	}
	if len(w.ledger) != 0 {
		t.Errorf("Expected empty ledger, got %d entries", len(w.ledger))
	}
}

func TestWindow_PrunePartial(t *testing.T) {
	w := newWindow(100, time.Minute)
	now := time.Now()

	w.record(now, 10)
	w.record(now.Add(30*time.Second), 20)

	// Only the first entry has fallen out of the window
	w.prune(now.Add(70 * time.Second))

	if w.outstanding != 20 {
		t.Errorf("Expected outstanding 20, got %d", w.outstanding)
	}
	if len(w.ledger) != 1 {
		t.Errorf("Expected 1 surviving entry, got %d", len(w.ledger))
	}
}

func TestWindow_PruneIdempotent(t *testing.T) {
	w := newWindow(100, time.Minute)
	now := time.Now()

	w.record(now, 50)
	later := now.Add(2 * time.Minute)

	w.prune(later)
	w.prune(later)
	w.prune(later)

	if w.outstanding != 0 {
		t.Errorf("Expected outstanding 0 after repeated prunes, got %d", w.outstanding)
	}
}

func TestWindow_Admits(t *testing.T) {
	w := newWindow(100, time.Minute)
	now := time.Now()

	if !w.admits(100) {
		t.Error("Expected empty window to admit amount equal to limit")
	}

	w.record(now, 60)

	if !w.admits(40) {
		t.Error("Expected window to admit amount that exactly fills the limit")
	}
	if w.admits(41) {
		t.Error("Expected window to reject amount exceeding remaining headroom")
	}
}

func TestWindow_NextExpiry(t *testing.T) {
	w := newWindow(100, time.Minute)
	now := time.Now()

	if got := w.nextExpiry(now); got != 0 {
		t.Errorf("Expected 0 expiry for empty ledger, got %v", got)
	}

	w.record(now, 10)
	w.record(now.Add(10*time.Second), 10)

	// Expiry is driven by the oldest entry
	got := w.nextExpiry(now.Add(20 * time.Second))
	if got != 40*time.Second {
		t.Errorf("Expected 40s until oldest entry expires, got %v", got)
	}
}
