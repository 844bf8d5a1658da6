package execution

import (
	"fmt"
	"log/slog"
	"time"

	"mcra/internal/domain"
	"mcra/internal/storage"
	"mcra/internal/ui"
)

// Result is what a pipeline run produced, complete or not
type Result struct {
	Summaries []domain.SuiteSummary
	// Failures holds every non-passing outcome, for the snapshot
	Failures []domain.TestOutcome
	Duration time.Duration
}

// Pipeline processes suites one after another, in the configured order
type Pipeline struct {
	runner   *SuiteRunner
	progress *ui.ProgressBar
	logger   *slog.Logger
}

// NewPipeline creates a new Pipeline
func NewPipeline(runner *SuiteRunner, logger *slog.Logger) *Pipeline {
	return &Pipeline{runner: runner, logger: logger}
}

// SetProgress sets the progress bar for the pipeline
func (p *Pipeline) SetProgress(progress *ui.ProgressBar) {
	p.progress = progress
}

// Execute runs every suite through the runner and writes its rows to each
// sink. The first error stops the run; the result then covers the suites
// completed so far, and their rows stay written.
func (p *Pipeline) Execute(suites []string, sinks ...storage.Sink) (*Result, error) {
	result := &Result{}
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		if p.progress != nil {
			p.progress.Finish()
		}
	}()

	var passed, failed int
	for i, suite := range suites {
		p.logger.Debug("processing suite", "suite", suite, "position", i+1, "of", len(suites))

		outcomes, summary, err := p.runner.Run(suite)
		if err != nil {
			return result, fmt.Errorf("suite %s: %w", suite, err)
		}

		for _, sink := range sinks {
			if err := sink.WriteSuite(suite, outcomes); err != nil {
				return result, fmt.Errorf("suite %s: %w", suite, err)
			}
		}

		result.Summaries = append(result.Summaries, summary)
		for j := range outcomes {
			if !outcomes[j].Passed() {
				result.Failures = append(result.Failures, outcomes[j])
			}
		}

		passed += summary.Passed
		failed += summary.Failed
		if p.progress != nil {
			p.progress.Update(suite, i+1, passed, failed)
		}
	}
	return result, nil
}
