package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TobiSchelling/streamdash/internal/config"
	"github.com/TobiSchelling/streamdash/internal/dataset"
	"github.com/TobiSchelling/streamdash/internal/logging"
	"github.com/TobiSchelling/streamdash/internal/metrics"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the outcome of loading a dataset. Session is nil unless every
// step succeeded.
type Result struct {
	Source  string
	Session *dataset.Session
	Steps   []StepResult
}

// Err returns the first step error, if any.
func (r *Result) Err() error {
	for _, s := range r.Steps {
		if s.Err != nil {
			return s.Err
		}
	}
	return nil
}

// OK reports whether the session is ready to render.
func (r *Result) OK() bool {
	return r.Err() == nil && r.Session != nil
}

// Pipeline runs fetch -> validate -> session.
type Pipeline struct {
	source   string
	required []string
	loader   *dataset.Loader
}

// New creates a pipeline for the configured dataset.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		source:   cfg.Dataset.URL,
		required: dataset.RequiredColumns,
		loader:   dataset.NewLoader(cfg.Dataset.Timeout),
	}
}

// Run executes the pipeline. It never exits the process; the caller decides
// what to do with a failed Result.
func (p *Pipeline) Run(ctx context.Context) *Result {
	start := time.Now()
	r := &Result{Source: p.source}

	logging.Info().Str("source", p.source).Msg("Loading dataset")

	// Step 1: Fetch
	table, err := p.loader.Fetch(ctx, p.source)
	if err != nil {
		r.Steps = append(r.Steps, StepResult{Name: "Fetch", Err: err})
		p.finish(r, start)
		return r
	}
	r.Steps = append(r.Steps, StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("%d rows, %d columns", table.Len(), len(table.Columns())),
	})

	// Step 2: Validate
	if err := dataset.Validate(table, p.required); err != nil {
		r.Steps = append(r.Steps, StepResult{Name: "Validate", Err: err})
		p.finish(r, start)
		return r
	}
	r.Steps = append(r.Steps, StepResult{
		Name:    "Validate",
		Summary: fmt.Sprintf("all %d required columns present", len(p.required)),
	})

	// Step 3: Session
	r.Session = dataset.NewSession(p.source, table.Columns(), table.Titles())
	r.Steps = append(r.Steps, StepResult{
		Name:    "Session",
		Summary: fmt.Sprintf("session %s with %d titles", r.Session.ID, r.Session.Len()),
	})

	p.finish(r, start)
	return r
}

func (p *Pipeline) finish(r *Result, start time.Time) {
	elapsed := time.Since(start)
	err := r.Err()

	rows := 0
	if r.Session != nil {
		rows = r.Session.Len()
	}
	metrics.RecordDatasetLoad(Outcome(err), elapsed, rows)

	if err != nil {
		logging.Err(err).Str("source", p.source).Dur("elapsed", elapsed).Msg("Dataset load failed")
		return
	}
	logging.Info().
		Str("session", r.Session.ID).
		Int("rows", rows).
		Dur("elapsed", elapsed).
		Msg("Dataset ready")
}

// Outcome labels err for metrics.
func Outcome(err error) string {
	var schemaErr *dataset.SchemaError
	var retrievalErr *dataset.RetrievalError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &schemaErr):
		return "schema_error"
	case errors.As(err, &retrievalErr):
		return "retrieval_error"
	default:
		return "error"
	}
}
