package execution

import (
	"log/slog"

	"mcra/internal/config"
	"mcra/internal/domain"
	"mcra/internal/parser"
	"mcra/internal/storage"
)

// SuiteRunner takes one suite from its artifacts to enriched outcomes
type SuiteRunner struct {
	config     *config.Config
	loader     *storage.ResultLoader
	indexer    *parser.LogIndexer
	correlator *parser.Correlator
	extractor  *parser.ErrorExtractor
	logger     *slog.Logger
}

// NewSuiteRunner creates a new SuiteRunner
func NewSuiteRunner(
	cfg *config.Config,
	loader *storage.ResultLoader,
	indexer *parser.LogIndexer,
	correlator *parser.Correlator,
	extractor *parser.ErrorExtractor,
	logger *slog.Logger,
) *SuiteRunner {
	return &SuiteRunner{
		config:     cfg,
		loader:     loader,
		indexer:    indexer,
		correlator: correlator,
		extractor:  extractor,
		logger:     logger,
	}
}

// Run loads the suite's results, indexes its log, correlates the two and
// extracts error messages. Any error is fatal for the run.
func (r *SuiteRunner) Run(suite string) ([]domain.TestOutcome, domain.SuiteSummary, error) {
	summary := domain.SuiteSummary{Suite: suite}
	dir := r.config.ResultsDir

	outcomes, resultFile, err := r.loader.Load(suite, dir, r.config.Platform, r.config.Version)
	summary.ResultFile = resultFile
	if err != nil {
		return nil, summary, err
	}

	index, logFile, err := r.indexer.Load(suite, dir)
	summary.LogFile = logFile
	if err != nil {
		return nil, summary, err
	}

	summary.Correlated, summary.Uncorrelated = r.correlator.Attach(outcomes, index)
	summary.WithErrMsg = r.extractor.Process(outcomes)
	summary.IndexedTests = len(index)
	summary.Tests = len(outcomes)
	for i := range outcomes {
		if outcomes[i].Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	r.logger.Info("processed suite",
		"suite", suite,
		"tests", summary.Tests,
		"failed", summary.Failed,
		"uncorrelated", summary.Uncorrelated,
		"with_errmsg", summary.WithErrMsg)
	return outcomes, summary, nil
}
