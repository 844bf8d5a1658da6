package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"mcra/internal/discovery"
	"mcra/internal/domain"
)

// Formatter formats and displays console output
type Formatter struct {
	out io.Writer
}

// NewFormatterTo creates a new Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

// PrintSummary prints the per-suite statistics of a report run
func (f *Formatter) PrintSummary(meta domain.ReportMeta) {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                 Correctness Report Statistics                 ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	fmt.Fprintf(f.out, "Platform: %s | Version: %s | Preview features: %s\n\n", meta.Platform, meta.Version, meta.PreviewFeatures)

	fmt.Fprintln(f.out, "┌────────────────┬────────┬────────┬────────┬──────────┬─────────┐")
	fmt.Fprintf(f.out, "│ %-14s │ %6s │ %6s │ %6s │ %8s │ %7s │\n", "Suite", "Tests", "Passed", "Failed", "No logs", "Errmsg")
	fmt.Fprintln(f.out, "├────────────────┼────────┼────────┼────────┼──────────┼─────────┤")
	for _, s := range meta.Suites {
		f.printSuiteRow(s, green, red, yellow)
	}
	fmt.Fprintln(f.out, "├────────────────┼────────┼────────┼────────┼──────────┼─────────┤")
	totals := meta.Totals()
	totals.Suite = "Total"
	f.printSuiteRow(totals, green, red, yellow)
	fmt.Fprintln(f.out, "└────────────────┴────────┴────────┴────────┴──────────┴─────────┘")

	fmt.Fprintf(f.out, "Duration: %.2fs\n\n", meta.DurationSeconds)

	switch {
	case !meta.Completed:
		red.Fprintf(f.out, "✗ Run aborted after %d suite(s): %s\n", len(meta.Suites), meta.Error)
	case totals.Failed == 0:
		green.Fprintln(f.out, "✓ All tests passed!")
	default:
		red.Fprintf(f.out, "✗ %d test(s) did not pass, %d with an extracted error message\n", totals.Failed, totals.WithErrMsg)
	}
	if meta.CSVPath != "" {
		fmt.Fprintf(f.out, "CSV report: %s\n", meta.CSVPath)
	}
}

func (f *Formatter) printSuiteRow(s domain.SuiteSummary, green, red, yellow *color.Color) {
	fmt.Fprintf(f.out, "│ %-14s │ %6d │ ", s.Suite, s.Tests)
	green.Fprintf(f.out, "%6d", s.Passed)
	fmt.Fprint(f.out, " │ ")
	red.Fprintf(f.out, "%6d", s.Failed)
	fmt.Fprint(f.out, " │ ")
	yellow.Fprintf(f.out, "%8d", s.Uncorrelated)
	fmt.Fprintf(f.out, " │ %7d │\n", s.WithErrMsg)
}

// PrintSuiteFiles prints the artifacts found for each suite as a tree.
// counts, when not nil, maps a result file to its record count.
func (f *Formatter) PrintSuiteFiles(dir string, suites []discovery.SuiteFiles, counts map[string]int) {
	color.New(color.FgGreen).Fprintf(f.out, "Results directory %s:\n\n", dir)

	for i, s := range suites {
		isLast := i == len(suites)-1
		branch, stem := "├── ", "│   "
		if isLast {
			branch, stem = "└── ", "    "
		}

		status := color.GreenString("ok")
		if !s.Complete() {
			status = color.RedString("incomplete")
		}
		fmt.Fprintf(f.out, "%s%s [%s]\n", branch, color.CyanString(s.Suite), status)

		var files []string
		files = append(files, s.ResultFiles...)
		files = append(files, s.LogFiles...)
		if len(files) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", stem, color.RedString("(no files found)"))
			continue
		}
		for j, path := range files {
			leaf := "├── "
			if j == len(files)-1 {
				leaf = "└── "
			}
			name := filepath.Base(path)
			if n, ok := counts[path]; ok {
				name = fmt.Sprintf("%s (%d tests)", name, n)
			}
			fmt.Fprintf(f.out, "%s%s%s\n", stem, leaf, color.YellowString(name))
		}
	}
}

// Error prints an error line
func (f *Formatter) Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(f.out, format+"\n", args...)
}
