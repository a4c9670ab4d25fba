// Package fill orchestrates one batch of note fills: it selects the notes
// whose mapped fields are empty, renders a prompt per note, and runs the
// provider calls as a rate-limited batch that writes generated values back
// to the store.
package fill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"deckfill/pkg/batch"
	"deckfill/pkg/notes"
	"deckfill/pkg/prompt"
	"deckfill/pkg/providers"
	"deckfill/pkg/ratelimit"
	"deckfill/pkg/tokens"
)

// Config contains configuration for a Filler.
type Config struct {
	// Store provides the notes to fill and receives the generated
	// field values. Required.
	Store notes.Store

	// Provider performs the completions. Required.
	Provider providers.Provider

	// Limiter is the shared rate limiter the batch acquires from.
	// Required.
	Limiter *ratelimit.Limiter

	// Estimator prices prompts for the limiter's token quota.
	// Defaults to the standard character-ratio estimator.
	Estimator *tokens.Estimator

	// Template is the prompt template with its field mappings.
	// At least one mapping is required.
	Template prompt.Template

	// Deck restricts the fill to one deck. Empty fills all decks.
	Deck string

	// Limit caps the number of notes per batch. Zero means no cap.
	Limit int

	// Logger receives fill logs. Defaults to slog.Default().
	Logger *slog.Logger

	// BatchMetrics receives batch metrics. Optional.
	BatchMetrics *batch.Metrics
}

// Filler builds and runs fill batches. A Filler is reusable: each Fill
// call creates a fresh single-use batch runner.
type Filler struct {
	store     notes.Store
	provider  providers.Provider
	limiter   *ratelimit.Limiter
	estimator *tokens.Estimator
	template  prompt.Template
	deck      string
	limit     int
	logger    *slog.Logger
	metrics   *batch.Metrics
}

// New creates a Filler.
func New(cfg Config) (*Filler, error) {
	if cfg.Store == nil {
		return nil, errors.New("fill: store is required")
	}
	if cfg.Provider == nil {
		return nil, errors.New("fill: provider is required")
	}
	if cfg.Limiter == nil {
		return nil, errors.New("fill: limiter is required")
	}
	if len(cfg.Template.Mappings) == 0 {
		return nil, errors.New("fill: at least one field mapping is required")
	}

	estimator := cfg.Estimator
	if estimator == nil {
		estimator = tokens.NewEstimator(tokens.Config{})
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Filler{
		store:     cfg.Store,
		provider:  cfg.Provider,
		limiter:   cfg.Limiter,
		estimator: estimator,
		template:  cfg.Template,
		deck:      cfg.Deck,
		limit:     cfg.Limit,
		logger:    logger.With("component", "fill"),
		metrics:   cfg.BatchMetrics,
	}, nil
}

// BuildJobs selects the notes needing a fill and packages each one as a
// batch job. The first mapped field drives note selection: a note whose
// first target field is already filled is considered done.
func (f *Filler) BuildJobs(ctx context.Context) ([]batch.Job, error) {
	selected, err := f.store.List(ctx, notes.Filter{
		Deck:         f.deck,
		MissingField: f.template.Mappings[0].Field,
		Limit:        f.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("fill: listing notes: %w", err)
	}

	jobs := make([]batch.Job, 0, len(selected))
	for _, note := range selected {
		rendered := f.template.Render(note.Fields)
		cost := f.estimator.Estimate(rendered, f.provider.Model())
		if cost < 1 {
			cost = 1
		}

		noteID := note.ID
		jobs = append(jobs, batch.NewJob(
			"note:"+strconv.FormatInt(noteID, 10),
			cost,
			func(ctx context.Context) error {
				return f.fillNote(ctx, noteID, rendered)
			},
		))
	}

	f.logger.Debug("fill jobs built", "deck", f.deck, "jobs", len(jobs))
	return jobs, nil
}

// Fill runs one complete batch: job selection, the rate-limited provider
// calls, and store writes, with progress delivered to the reporter.
func (f *Filler) Fill(ctx context.Context, reporter batch.Reporter) (*batch.Result, error) {
	jobs, err := f.BuildJobs(ctx)
	if err != nil {
		return nil, err
	}

	runner, err := batch.NewRunner(batch.RunnerConfig{
		Limiter: f.limiter,
		Logger:  f.logger,
		Metrics: f.metrics,
	})
	if err != nil {
		return nil, err
	}

	return runner.Run(ctx, jobs, reporter)
}

// fillNote is the per-note action: complete, parse, write back.
func (f *Filler) fillNote(ctx context.Context, noteID int64, rendered string) error {
	response, err := f.provider.Complete(ctx, rendered)
	if err != nil {
		return err
	}

	parsed, err := prompt.ParseResponse(response)
	if err != nil {
		return &providers.ParseError{Provider: f.provider.Name(), Cause: err}
	}

	// Only mapped fields are written; anything extra the model invented
	// is dropped, and a response missing every mapped field is treated
	// as unparseable.
	updates := make(map[string]string, len(f.template.Mappings))
	for _, m := range f.template.Mappings {
		if value, ok := parsed[m.Field]; ok && value != "" {
			updates[m.Field] = value
		}
	}
	if len(updates) == 0 {
		return &providers.ParseError{
			Provider: f.provider.Name(),
			Cause:    fmt.Errorf("response contained none of the mapped fields"),
		}
	}

	if err := f.store.UpdateFields(ctx, noteID, updates); err != nil {
		return fmt.Errorf("fill: updating note %d: %w", noteID, err)
	}

	f.logger.Debug("note filled", "note", noteID, "fields", len(updates))
	return nil
}
