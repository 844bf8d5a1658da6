package parser

import (
	"log/slog"

	"mcra/internal/domain"
)

// ErrorExtractor picks the most relevant error text out of a failing test's
// log lines using an ordered rule list.
type ErrorExtractor struct {
	rules         []Rule
	maxCandidates int
	logger        *slog.Logger
}

// NewErrorExtractor creates an extractor keeping at most maxCandidates
// messages per test. With no rules, DefaultRules are used.
func NewErrorExtractor(maxCandidates int, logger *slog.Logger, rules ...Rule) *ErrorExtractor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &ErrorExtractor{
		rules:         rules,
		maxCandidates: maxCandidates,
		logger:        logger,
	}
}

// Extract applies the rules in order; the first one yielding a non-blank
// candidate wins.
func (e *ErrorExtractor) Extract(lines []string) domain.ErrMsg {
	var found []string
	for _, rule := range e.rules {
		found = rule.candidates(lines)
		// a lone blank capture counts as no match and the next rule is tried
		if len(found) == 1 && found[0] == "" {
			found = nil
		}
		if len(found) > 0 {
			break
		}
	}
	if e.maxCandidates > 0 && len(found) > e.maxCandidates {
		found = found[:e.maxCandidates]
	}
	return domain.NewErrMsg(found)
}

// Process sets ErrMsg on every correlated, non-passing outcome and returns how
// many got at least one candidate.
func (e *ErrorExtractor) Process(outcomes []domain.TestOutcome) int {
	e.logger.Debug("extracting errors", "outcomes", len(outcomes))

	found := 0
	for i := range outcomes {
		o := &outcomes[i]
		if !o.Correlated() || o.Passed() {
			continue
		}
		o.ErrMsg = e.Extract(o.LogLines)
		if o.ErrMsg.Kind == domain.ErrMsgEmpty {
			e.logger.Debug("no error found in log", "suite", o.Suite, "test_file", o.TestFile, "status", o.Status)
			continue
		}
		found++
	}
	return found
}
