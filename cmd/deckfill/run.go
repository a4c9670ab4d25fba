package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"deckfill/pkg/batch"
	"deckfill/pkg/config"
	"deckfill/pkg/fill"
	"deckfill/pkg/notes"
	"deckfill/pkg/prompt"
	"deckfill/pkg/providerfactory"
	"deckfill/pkg/providers"
	"deckfill/pkg/ratelimit"
	"deckfill/pkg/telemetry/logging"
	"deckfill/pkg/tokens"
)

var runFlags struct {
	daemon bool
	deck   string
	limit  int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fill empty note fields with generated content",
	Long: `Run one fill batch, or recurring batches in daemon mode.

A batch selects every note whose mapped fields are still empty, sends one
prompt per note, and writes the generated values back. Provider calls run
concurrently, throttled only by the configured requests-per-minute and
tokens-per-minute limits.

Examples:
  # Run one batch with default config
  deckfill run

  # Run with custom config
  deckfill run --config /etc/deckfill/deckfill.yaml

  # Restrict to one deck
  deckfill run --deck Spanish

  # Run recurring fills on the configured schedule
  deckfill run --daemon`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runFlags.daemon, "daemon", false, "run recurring fills on the configured schedule")
	runCmd.Flags().StringVar(&runFlags.deck, "deck", "", "override the deck to fill")
	runCmd.Flags().IntVar(&runFlags.limit, "limit", 0, "override the per-batch note cap")
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	// Apply flag overrides
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if runFlags.deck != "" {
		cfg.Prompt.Deck = runFlags.deck
	}
	if runFlags.limit > 0 {
		cfg.Prompt.Limit = runFlags.limit
	}
	if runFlags.daemon {
		cfg.Daemon.Enabled = true
	}

	logger, err := logging.New(logging.Config{
		Level:         cfg.Telemetry.Logging.Level,
		Format:        cfg.Telemetry.Logging.Format,
		AddSource:     cfg.Telemetry.Logging.AddSource,
		RedactSecrets: true,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger.Slog())

	providerCfg := cfg.Providers[cfg.Provider]
	provider, err := providerfactory.Default().New(providerCfg.Kind, providers.Config{
		Name:        cfg.Provider,
		Model:       providerCfg.Model,
		APIKey:      providerCfg.APIKey,
		BaseURL:     providerCfg.BaseURL,
		Temperature: providerCfg.Temperature,
		MaxTokens:   providerCfg.MaxTokens,
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	limiter, err := ratelimit.NewPerMinute(providerCfg.RequestsPerMinute, providerCfg.TokensPerMinute)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	registry := prometheus.NewRegistry()
	limiter.SetMetrics(ratelimit.NewMetrics(registry, cfg.Provider))
	batchMetrics := batch.NewMetrics(registry)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	filler, err := fill.New(fill.Config{
		Store:    store,
		Provider: provider,
		Limiter:  limiter,
		Estimator: tokens.NewEstimator(tokens.Config{
			CharsPerToken: cfg.Tokens.CharsPerToken,
			ModelRatios:   cfg.Tokens.ModelRatios,
		}),
		Template: prompt.Template{
			Text:     cfg.Prompt.Template,
			Mappings: prompt.ParseFieldMappings(cfg.Prompt.FieldMappings),
		},
		Deck:         cfg.Prompt.Deck,
		Limit:        cfg.Prompt.Limit,
		Logger:       logger.Slog(),
		BatchMetrics: batchMetrics,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Deckfill v%s\n", Version)
	fmt.Printf("✓ Configuration loaded from %s\n", cfgFile)
	fmt.Printf("✓ Provider %s (%s), %d req/min, %d tokens/min\n",
		cfg.Provider, providerCfg.Model,
		providerCfg.RequestsPerMinute, providerCfg.TokensPerMinute)

	if cfg.Daemon.Enabled {
		return runDaemon(ctx, cfg, filler, limiter, registry, logger)
	}
	return runOnce(ctx, filler, logger)
}

// runOnce runs a single batch. A SIGINT mid-batch cancels cooperatively:
// admitted jobs finish, pending jobs are skipped.
func runOnce(ctx context.Context, filler *fill.Filler, logger *logging.Logger) error {
	result, err := filler.Fill(ctx, batch.NewLogReporter(logger.Slog()))
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Batch %s finished: %d/%d succeeded", result.BatchID, result.Succeeded, result.Total)
	if result.Failed() > 0 {
		fmt.Printf(", %d failed", result.Failed())
	}
	if result.Cancelled {
		fmt.Printf(", cancelled with %d skipped", result.Skipped)
	}
	fmt.Println()
	return nil
}

// runDaemon runs recurring fills, watching the config file so limit
// changes apply to the live limiter without a restart.
func runDaemon(ctx context.Context, cfg *config.Config, filler *fill.Filler, limiter *ratelimit.Limiter, registry *prometheus.Registry, logger *logging.Logger) error {
	daemonCfg := fill.DaemonConfig{
		Filler:   filler,
		Schedule: cfg.Daemon.Schedule,
		Logger:   logger.Slog(),
	}
	if cfg.Telemetry.Metrics.Enabled {
		daemonCfg.MetricsAddr = cfg.Telemetry.Metrics.Address
		daemonCfg.Registry = registry
	}

	daemon, err := fill.NewDaemon(daemonCfg)
	if err != nil {
		return err
	}

	watcher, err := config.NewWatcher(cfgFile, logger.Slog())
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	go func() {
		err := watcher.Watch(ctx, func(newCfg *config.Config) {
			config.ApplyLimits(newCfg, limiter, logger.Slog())
		})
		if err != nil {
			logger.Error("config watcher failed", "error", err)
		}
	}()

	fmt.Printf("✓ Daemon started, schedule %q\n", cfg.Daemon.Schedule)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Telemetry.Metrics.Address)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	return daemon.Run(ctx)
}

func openStore(cfg *config.Config) (notes.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return notes.NewSQLiteStore(&notes.SQLiteConfig{
			Path:         cfg.Store.SQLite.Path,
			MaxOpenConns: cfg.Store.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Store.SQLite.MaxIdleConns,
			WALMode:      cfg.Store.SQLite.WALMode,
			BusyTimeout:  cfg.Store.SQLite.BusyTimeout,
		})
	case "memory":
		return notes.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}
