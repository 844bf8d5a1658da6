package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"

	"mcra/internal/discovery"
	"mcra/internal/domain"
)

func init() {
	color.NoColor = true
}

func TestFormatter_PrintSummary(t *testing.T) {
	meta := domain.ReportMeta{
		Platform:  "atlas",
		Version:   "v5.0",
		CSVPath:   "results.csv",
		Completed: true,
		Suites: []domain.SuiteSummary{
			{Suite: "core", Tests: 3, Passed: 2, Failed: 1, WithErrMsg: 1},
			{Suite: "decimal", Tests: 1, Passed: 1},
		},
	}

	var buf bytes.Buffer
	NewFormatterTo(&buf).PrintSummary(meta)
	out := buf.String()

	assert.Contains(t, out, "Platform: atlas")
	assert.Contains(t, out, "│ core           │      3 │      2 │      1 │")
	assert.Contains(t, out, "│ Total          │      4 │      3 │      1 │")
	assert.Contains(t, out, "1 test(s) did not pass, 1 with an extracted error message")
	assert.Contains(t, out, "CSV report: results.csv")
}

func TestFormatter_PrintSummary_Aborted(t *testing.T) {
	var buf bytes.Buffer
	NewFormatterTo(&buf).PrintSummary(domain.ReportMeta{Error: "[core] no file matching *core.json"})

	assert.Contains(t, buf.String(), "Run aborted after 0 suite(s): [core] no file matching *core.json")
}

func TestFormatter_PrintSuiteFiles(t *testing.T) {
	suites := []discovery.SuiteFiles{
		{Suite: "core", ResultFiles: []string{"/r/x_core.json"}, LogFiles: []string{"/r/x_core.log"}},
		{Suite: "decimal"},
	}

	var buf bytes.Buffer
	NewFormatterTo(&buf).PrintSuiteFiles("/r", suites, map[string]int{"/r/x_core.json": 12})
	out := buf.String()

	assert.Contains(t, out, "├── core [ok]")
	assert.Contains(t, out, "│   ├── x_core.json (12 tests)")
	assert.Contains(t, out, "│   └── x_core.log")
	assert.Contains(t, out, "└── decimal [incomplete]")
	assert.Contains(t, out, "    └── (no files found)")
}

func TestFormatOutcomeDetails(t *testing.T) {
	o := domain.TestOutcome{
		TestFile: "jstests/core/foo.js",
		Status:   "fail",
		ErrMsg:   domain.NewErrMsg([]string{`"bad [thing]"`}),
		LogLines: make([]string, maxDetailLogLines+5),
	}

	out := formatOutcomeDetails(o)
	assert.Contains(t, out, "Error message:")
	assert.Contains(t, out, tview.Escape(`"bad [thing]"`))
	assert.Contains(t, out, "... and 5 more lines")

	o.ErrMsg = domain.ErrMsg{}
	o.LogLines = nil
	assert.Contains(t, formatOutcomeDetails(o), "No log lines were found")

	o.ErrMsg = domain.NewErrMsg(nil)
	assert.Contains(t, formatOutcomeDetails(o), "No error message found")
}

func TestListItemText(t *testing.T) {
	o := domain.TestOutcome{TestFile: "a.js"}
	assert.Equal(t, "[yellow]1.[white] a.js", listItemText(o, 0))

	o.Reviewed = true
	assert.True(t, strings.HasPrefix(listItemText(o, 1), "[gray]✓ [yellow]2."))

	assert.Contains(t, listItemText(domain.TestOutcome{}, 2), "Test 3")
}

func TestHeaderText(t *testing.T) {
	snapshot := &domain.ReportSnapshot{
		Meta:     domain.ReportMeta{Platform: "atlas", Version: "v5.0"},
		Failures: []domain.TestOutcome{{Reviewed: true}, {}},
	}
	assert.Contains(t, headerText(snapshot), "2 not passing, 1 not reviewed")
}

func TestProgressBar(t *testing.T) {
	bar := NewProgressBarTo(io.Discard, 2)
	bar.Update("core", 1, 3, 1)
	bar.Update("decimal", 2, 4, 1)
	bar.Finish()

	assert.Contains(t, describe("core", 3, 1), "Analyzed core")
	assert.Contains(t, describe("", 0, 0), "Analyzing suites")
}
