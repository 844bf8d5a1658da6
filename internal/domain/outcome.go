package domain

// StatusPass is the harness status of a passing test.
const StatusPass = "pass"

// TestOutcome is one test's recorded result from a harness run, enriched with
// the log lines emitted for it and the error message extracted from them.
type TestOutcome struct {
	TestFile  string   `json:"test_file"`
	Status    string   `json:"status"`
	Suite     string   `json:"suite"`
	Platform  string   `json:"platform"`
	Version   string   `json:"version"`
	Processed bool     `json:"processed"`
	ExitCode  *int     `json:"exit_code,omitempty"`
	Elapsed   float64  `json:"elapsed,omitempty"`
	LogLines  []string `json:"log_lines,omitempty"` // nil until correlated
	ErrMsg    ErrMsg   `json:"errmsg"`
	Reviewed  bool     `json:"reviewed,omitempty"` // set from the failures viewer
}

// Passed reports whether the harness marked the test as passing.
func (o *TestOutcome) Passed() bool {
	return o.Status == StatusPass
}

// Correlated reports whether log lines were attached to the outcome.
func (o *TestOutcome) Correlated() bool {
	return o.LogLines != nil
}

// LogIndex maps a test name to the log lines emitted for it, in file order.
type LogIndex map[string][]string
