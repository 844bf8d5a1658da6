package domain

// SuiteSummary holds the counts gathered while processing one suite.
type SuiteSummary struct {
	Suite        string `json:"suite"`
	ResultFile   string `json:"result_file"`
	LogFile      string `json:"log_file"`
	Tests        int    `json:"tests"`
	Passed       int    `json:"passed"`
	Failed       int    `json:"failed"`
	IndexedTests int    `json:"indexed_tests"`
	Correlated   int    `json:"correlated"`
	Uncorrelated int    `json:"uncorrelated"`
	WithErrMsg   int    `json:"with_errmsg"`
}

// ReportMeta describes a whole report run.
type ReportMeta struct {
	RunID           string         `json:"run_id"`
	Date            string         `json:"date"`
	Platform        string         `json:"platform"`
	Version         string         `json:"version"`
	PreviewFeatures string         `json:"preview_features"`
	ResultsDir      string         `json:"results_dir"`
	CSVPath         string         `json:"csv_path"`
	Suites          []SuiteSummary `json:"suites"`
	Completed       bool           `json:"completed"`
	Error           string         `json:"error,omitempty"`
	Duration        string         `json:"duration"`
	DurationSeconds float64        `json:"duration_seconds"`
	Timestamp       string         `json:"timestamp"`
}

// Totals sums the per-suite counts.
func (m ReportMeta) Totals() SuiteSummary {
	var t SuiteSummary
	for _, s := range m.Suites {
		t.Tests += s.Tests
		t.Passed += s.Passed
		t.Failed += s.Failed
		t.IndexedTests += s.IndexedTests
		t.Correlated += s.Correlated
		t.Uncorrelated += s.Uncorrelated
		t.WithErrMsg += s.WithErrMsg
	}
	return t
}

// ReportSnapshot is the stored outcome of the last report run, used by the
// failures viewer.
type ReportSnapshot struct {
	Meta     ReportMeta    `json:"meta"`
	Failures []TestOutcome `json:"failures"`
}
