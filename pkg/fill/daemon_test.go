package fill

import (
	"context"
	"testing"
	"time"

	"deckfill/internal/providertest"
	"deckfill/pkg/batch"
)

func TestNewDaemon_Validation(t *testing.T) {
	store := seedStore(t, 0)
	filler := newFiller(t, store, providertest.NewMockProvider("mock", "m"))

	cases := []struct {
		name string
		cfg  DaemonConfig
	}{
		{"missing filler", DaemonConfig{Schedule: "* * * * *"}},
		{"missing schedule", DaemonConfig{Filler: filler}},
		{"invalid schedule", DaemonConfig{Filler: filler, Schedule: "not a cron"}},
		{"metrics addr without registry", DaemonConfig{Filler: filler, Schedule: "* * * * *", MetricsAddr: ":0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDaemon(tc.cfg); err == nil {
				t.Error("Expected constructor error, got nil")
			}
		})
	}
}

func TestDaemon_RunsScheduledFills(t *testing.T) {
	store := seedStore(t, 2)
	provider := providertest.NewMockProvider("mock", "test-model")
	provider.Respond = func(string) (string, error) {
		return `{"Back": "ok", "Example": "ok"}`, nil
	}
	filler := newFiller(t, store, provider)

	daemon, err := NewDaemon(DaemonConfig{
		Filler:   filler,
		Schedule: "@every 100ms",
		Reporter: batch.NopReporter{},
	})
	if err != nil {
		t.Fatalf("NewDaemon failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 350*time.Millisecond)
	defer cancel()
	if err := daemon.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The first tick fills both notes; later ticks find nothing to do.
	if provider.Calls() != 2 {
		t.Errorf("Expected 2 provider calls, got %d", provider.Calls())
	}
}
