package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	reporterrors "mcra/internal/errors"
)

const (
	// ExtResults is the extension of a suite's structured result file
	ExtResults = "json"
	// ExtLog is the extension of a suite's raw log file
	ExtLog = "log"
)

// Locator finds a suite's artifacts in a results directory
type Locator struct {
	strict bool
	logger *slog.Logger
}

// NewLocator creates a new Locator. With strict set, more than one file
// matching a suite pattern is an error instead of a warning.
func NewLocator(strict bool, logger *slog.Logger) *Locator {
	return &Locator{strict: strict, logger: logger}
}

// Pattern returns the glob a suite's file must match, e.g. "*core.json"
func Pattern(suite, ext string) string {
	return fmt.Sprintf("*%s.%s", suite, ext)
}

// Find returns the path of the single file in dir matching *<suite>.<ext>.
// When several match, the lexically first one is used.
func (l *Locator) Find(dir, suite, ext string) (string, error) {
	matches, err := l.Matches(dir, suite, ext)
	if err != nil {
		return "", err
	}

	pattern := Pattern(suite, ext)
	switch {
	case len(matches) == 0:
		return "", reporterrors.InputDiscoveryf(suite, "no file matching %s in %s", pattern, dir)
	case len(matches) > 1:
		if l.strict {
			return "", reporterrors.InputDiscoveryf(suite, "%d files match %s in %s: %v", len(matches), pattern, dir, matches)
		}
		l.logger.Warn("several files match suite pattern, using the first",
			"suite", suite, "pattern", pattern, "matches", matches, "using", matches[0])
	}

	return filepath.Join(dir, matches[0]), nil
}

// Matches lists the names of the regular files in dir matching *<suite>.<ext>,
// sorted by name.
func (l *Locator) Matches(dir, suite, ext string) ([]string, error) {
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, reporterrors.InputDiscoveryf(suite, "results directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, reporterrors.InputDiscoveryf(suite, "results path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, reporterrors.InputDiscoveryf(suite, "read results directory %s: %v", dir, err)
	}

	pattern := Pattern(suite, ext)
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// os.ReadDir sorts by name, so matches come out sorted
		if ok, err := filepath.Match(pattern, entry.Name()); err == nil && ok {
			matches = append(matches, entry.Name())
		}
	}
	return matches, nil
}
