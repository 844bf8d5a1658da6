package parser

import (
	"log/slog"
	"regexp"

	"mcra/internal/domain"
)

// testNamePattern takes the last path segment up to its last ".js", which
// covers both .js and .json test files.
var testNamePattern = regexp.MustCompile(`^.*/(.*)\.js.*`)

// TestName derives the log index key of a test file path.
func TestName(testFile string) (string, bool) {
	match := testNamePattern.FindStringSubmatch(testFile)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Correlator attaches indexed log lines to test outcomes
type Correlator struct {
	logger *slog.Logger
}

// NewCorrelator creates a new Correlator
func NewCorrelator(logger *slog.Logger) *Correlator {
	return &Correlator{logger: logger}
}

// Attach sets LogLines on every outcome whose derived test name is in index.
// Misses are logged and counted, never returned as errors.
func (c *Correlator) Attach(outcomes []domain.TestOutcome, index domain.LogIndex) (correlated, missed int) {
	c.logger.Debug("merging results", "outcomes", len(outcomes), "indexed", len(index))

	for i := range outcomes {
		o := &outcomes[i]
		name, ok := TestName(o.TestFile)
		if !ok {
			c.logger.Warn("cannot derive test name", "suite", o.Suite, "test_file", o.TestFile)
			missed++
			continue
		}
		lines, ok := index[name]
		if !ok {
			c.logger.Warn("test not in log", "suite", o.Suite, "test", name, "test_file", o.TestFile)
			missed++
			continue
		}
		o.LogLines = append(make([]string, 0, len(lines)), lines...)
		correlated++
	}
	return correlated, missed
}
