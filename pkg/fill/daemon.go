package fill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"deckfill/pkg/batch"
)

// DaemonConfig contains configuration for a Daemon.
type DaemonConfig struct {
	// Filler runs the scheduled batches. Required.
	Filler *Filler

	// Schedule is a cron expression for recurring fills, e.g.
	// "*/30 * * * *". Required.
	Schedule string

	// Reporter receives batch events from every scheduled run.
	// Defaults to a log-backed reporter.
	Reporter batch.Reporter

	// MetricsAddr serves the Prometheus /metrics endpoint while the
	// daemon runs. Empty disables the endpoint.
	MetricsAddr string

	// Registry backs the /metrics endpoint. Required when MetricsAddr
	// is set.
	Registry *prometheus.Registry

	// Logger receives daemon logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Daemon runs recurring fills on a cron schedule. Overlapping runs are
// prevented: a tick that fires while a previous fill is still in flight
// is skipped.
type Daemon struct {
	filler   *Filler
	reporter batch.Reporter
	logger   *slog.Logger

	cron    *cron.Cron
	entryID cron.EntryID
	server  *http.Server

	// runCtx is set in Run before the cron starts so scheduled fills
	// inherit the daemon's lifetime and cancel cooperatively on
	// shutdown.
	runCtx  context.Context
	running sync.Mutex
}

// NewDaemon creates a daemon. The cron expression is validated here so
// configuration mistakes surface at startup rather than on first tick.
func NewDaemon(cfg DaemonConfig) (*Daemon, error) {
	if cfg.Filler == nil {
		return nil, errors.New("fill: filler is required")
	}
	if cfg.Schedule == "" {
		return nil, errors.New("fill: cron schedule is required")
	}
	if cfg.MetricsAddr != "" && cfg.Registry == nil {
		return nil, errors.New("fill: metrics registry is required when metrics address is set")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "fill.daemon")

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = batch.NewLogReporter(logger)
	}

	d := &Daemon{
		filler:   cfg.Filler,
		reporter: reporter,
		logger:   logger,
		cron:     cron.New(),
	}

	entryID, err := d.cron.AddFunc(cfg.Schedule, d.tick)
	if err != nil {
		return nil, fmt.Errorf("fill: invalid cron schedule %q: %w", cfg.Schedule, err)
	}
	d.entryID = entryID

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
		d.server = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	}

	return d, nil
}

// Run starts the schedule and blocks until the context is cancelled,
// then shuts down cleanly: the cron stops, an in-flight fill finishes,
// and the metrics server drains.
func (d *Daemon) Run(ctx context.Context) error {
	d.logger.Info("daemon started",
		"next_run", d.cron.Entry(d.entryID).Schedule.Next(time.Now()),
	)

	if d.server != nil {
		go func() {
			d.logger.Info("metrics endpoint listening", "addr", d.server.Addr)
			if err := d.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				d.logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	d.runCtx = ctx
	d.cron.Start()
	<-ctx.Done()

	cronCtx := d.cron.Stop()
	<-cronCtx.Done()
	// Wait out any fill the cron context does not track.
	d.running.Lock()
	d.running.Unlock() //nolint:staticcheck // lock/unlock pair is the wait

	if d.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("fill: metrics server shutdown: %w", err)
		}
	}

	d.logger.Info("daemon stopped")
	return nil
}

// tick runs one scheduled fill, skipping the tick if one is in flight.
func (d *Daemon) tick() {
	if !d.running.TryLock() {
		d.logger.Warn("previous fill still running, skipping tick")
		return
	}
	defer d.running.Unlock()

	result, err := d.filler.Fill(d.runCtx, d.reporter)
	if err != nil {
		d.logger.Error("scheduled fill failed", "error", err)
		return
	}
	d.logger.Info("scheduled fill finished",
		"batch_id", result.BatchID,
		"succeeded", result.Succeeded,
		"failed", result.Failed(),
		"total", result.Total,
	)
}
