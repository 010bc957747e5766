package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/metnet/internal/model"
	"github.com/roach88/metnet/internal/recon"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string

	// Model is the assembled model; nil when reconstruction failed.
	Model *model.Model

	// Warnings are the linker warnings in row order.
	Warnings []recon.Warning

	// Err is the reconstruction error an expect_error scenario ended with.
	Err error
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Errors:   []string{},
		Warnings: []recon.Warning{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// staticNamer serves compartment names from a fixed table.
type staticNamer map[string]string

func (n staticNamer) CompartmentNames(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := n[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger routes reconstruction logs to logger. Default: discarded.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// Run reconstructs the scenario's rows and evaluates its assertions.
//
// Returns an error only when reconstruction fails unexpectedly. Assertion
// failures, and an expected error that did not happen, are reported in
// Result.Errors.
func Run(s *Scenario, opts ...RunOption) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	modelID := s.ModelID
	if modelID == "" {
		modelID = DefaultModelID
	}

	rc := recon.New(
		recon.WithLogger(cfg.logger),
		recon.WithAttachAllCopies(s.Options.AttachAllCopies),
	)
	rows := s.Rows
	out, err := rc.Build(context.Background(), modelID, &rows, staticNamer(s.Compartments))

	result := NewResult()
	if s.ExpectError != "" {
		return expectFailure(s, result, err)
	}
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	result.Model = out.Model
	result.Warnings = out.Warnings
	for _, a := range s.Assertions {
		if err := evaluate(result, a); err != nil {
			result.AddError(err.Error())
		}
	}
	return result, nil
}

func expectFailure(s *Scenario, result *Result, err error) (*Result, error) {
	switch {
	case err == nil:
		result.AddError(fmt.Sprintf("expected %s error, reconstruction succeeded", s.ExpectError))
	case s.ExpectError == ExpectDuplicateIdentifier && recon.IsDuplicateIdentifier(err):
		result.Err = err
	default:
		return nil, fmt.Errorf("scenario %s: expected %s error, got: %w", s.Name, s.ExpectError, err)
	}
	return result, nil
}
