// Package search runs the per-identifier traversal and writes the results.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/davfind/internal/config"
	"github.com/harrison/davfind/internal/davclient"
	"github.com/harrison/davfind/internal/logger"
	"github.com/harrison/davfind/internal/models"
	"github.com/harrison/davfind/internal/output"
	"github.com/harrison/davfind/internal/walker"
)

// Sink receives the complete match list once per run.
type Sink interface {
	Write(ctx context.Context, matches []models.Match) error
}

// Runner searches each identifier's roots in turn.
type Runner struct {
	cfg    *config.Config
	walker *walker.Walker
	logger logger.Logger
	sinks  []Sink
	store  *output.Store
	runID  string

	// outputPath is reported in the summary when the default CSV sink is used
	outputPath string
}

// Option configures a Runner.
type Option func(*Runner)

// WithRunID sets the run ID; by default a random UUID is used.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}

// WithStore records every run in a SQLite store in addition to the sinks.
func WithStore(store *output.Store) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithSinks replaces the default CSV sink.
func WithSinks(sinks ...Sink) Option {
	return func(r *Runner) {
		r.sinks = sinks
		r.outputPath = ""
	}
}

// NewRunner builds a Runner from a validated config.
func NewRunner(cfg *config.Config, lister davclient.Lister, log logger.Logger, opts ...Option) (*Runner, error) {
	filter, err := walker.NewFilter(cfg.Search, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	r := &Runner{
		cfg:    cfg,
		walker: walker.New(lister, filter, cfg.MaxDepth, log),
		logger: log,
		sinks:  []Sink{output.CSVFile{Path: cfg.Output, Header: cfg.Header}},
		runID:  uuid.NewString(),

		outputPath: cfg.Output,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RunID returns the ID recorded for this run.
func (r *Runner) RunID() string {
	return r.runID
}

// Run searches every identifier and writes all matches once at the end.
// Listing failures never abort the run; cancellation stops it before any
// output is written.
func (r *Runner) Run(ctx context.Context, identifiers []string) (models.Summary, []models.Match, error) {
	start := time.Now()
	summary := models.Summary{RunID: r.runID}
	var all []models.Match

	r.logger.LogInfo("Starting module.")

	for i, id := range identifiers {
		roots := r.cfg.Roots(id)
		r.logger.LogIdentifierStart(id, roots)

		result, matches, err := r.walker.Walk(ctx, id, roots)
		if err != nil {
			summary.Duration = time.Since(start)
			r.logger.LogError(fmt.Sprintf("%s: search interrupted: %v", id, err))
			return summary, all, fmt.Errorf("search interrupted at %s: %w", id, err)
		}

		summary.Add(result)
		all = append(all, matches...)
		r.logger.LogIdentifierComplete(result, i+1, len(identifiers))
	}

	for _, sink := range r.sinks {
		if err := sink.Write(ctx, all); err != nil {
			summary.Duration = time.Since(start)
			return summary, all, err
		}
	}
	summary.OutputPath = r.outputPath

	if r.store != nil {
		run := output.Run{
			ID:              r.runID,
			Search:          r.cfg.Search,
			StartedAt:       start,
			FinishedAt:      time.Now(),
			Identifiers:     summary.Identifiers,
			ListingFailures: summary.ListingFailures,
		}
		if err := r.store.RecordRun(ctx, run, all); err != nil {
			summary.Duration = time.Since(start)
			return summary, all, fmt.Errorf("failed to record run: %w", err)
		}
		summary.DBPath = r.cfg.DBPath
	}

	summary.Duration = time.Since(start)
	r.logger.LogSummary(summary)
	r.logger.LogInfo("Module Complete")

	return summary, all, nil
}
