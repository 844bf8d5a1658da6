package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"mcra/internal/discovery"
	"mcra/internal/domain"
	reporterrors "mcra/internal/errors"
)

// resultsKey is the container key of a harness result file
const resultsKey = "results"

type resultFile struct {
	Results *[]resultRecord `json:"results"`
}

type resultRecord struct {
	TestFile string  `json:"test_file"`
	Status   string  `json:"status"`
	ExitCode *int    `json:"exit_code"`
	Elapsed  float64 `json:"elapsed"`
}

// ResultLoader reads a suite's structured result file
type ResultLoader struct {
	locator *discovery.Locator
	logger  *slog.Logger
}

// NewResultLoader creates a new ResultLoader
func NewResultLoader(locator *discovery.Locator, logger *slog.Logger) *ResultLoader {
	return &ResultLoader{locator: locator, logger: logger}
}

// Load locates *<suite>.json in dir and returns its records, in file order,
// stamped with suite, platform and version. The located path is returned too.
func (rl *ResultLoader) Load(suite, dir, platform, version string) ([]domain.TestOutcome, string, error) {
	rl.logger.Debug("loading result file", "suite", suite, "dir", dir)

	path, err := rl.locator.Find(dir, suite, discovery.ExtResults)
	if err != nil {
		return nil, "", err
	}

	outcomes, err := ReadOutcomes(path, suite)
	if err != nil {
		return nil, path, err
	}

	for i := range outcomes {
		outcomes[i].Platform = platform
		outcomes[i].Version = version
	}
	return outcomes, path, nil
}

// ReadOutcomes decodes one result file. Records carry the suite and are
// marked unprocessed.
func ReadOutcomes(path, suite string) ([]domain.TestOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reporterrors.InputDiscoveryf(suite, "read %s: %v", path, err)
	}

	var file resultFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, reporterrors.Parse(suite, path, err)
	}
	if file.Results == nil {
		return nil, reporterrors.Parse(suite, path, fmt.Errorf("missing %q key", resultsKey))
	}

	records := *file.Results
	outcomes := make([]domain.TestOutcome, len(records))
	for i, rec := range records {
		outcomes[i] = domain.TestOutcome{
			TestFile:  rec.TestFile,
			Status:    rec.Status,
			Suite:     suite,
			Processed: false,
			ExitCode:  rec.ExitCode,
			Elapsed:   rec.Elapsed,
		}
	}
	return outcomes, nil
}
