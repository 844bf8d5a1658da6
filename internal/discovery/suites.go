package discovery

import "path/filepath"

// SuiteFiles lists what the results directory holds for one suite
type SuiteFiles struct {
	Suite       string
	ResultFiles []string
	LogFiles    []string
}

// Complete reports whether exactly one result file and one log file exist.
func (s SuiteFiles) Complete() bool {
	return len(s.ResultFiles) == 1 && len(s.LogFiles) == 1
}

// Scan collects the artifacts of every suite without failing on missing ones.
// Only an unreadable directory is an error.
func (l *Locator) Scan(dir string, suites []string) ([]SuiteFiles, error) {
	out := make([]SuiteFiles, 0, len(suites))
	for _, suite := range suites {
		results, err := l.Matches(dir, suite, ExtResults)
		if err != nil {
			return nil, err
		}
		logs, err := l.Matches(dir, suite, ExtLog)
		if err != nil {
			return nil, err
		}
		out = append(out, SuiteFiles{
			Suite:       suite,
			ResultFiles: joinAll(dir, results),
			LogFiles:    joinAll(dir, logs),
		})
	}
	return out, nil
}

func joinAll(dir string, names []string) []string {
	if len(names) == 0 {
		return nil
	}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}
