package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"mcra/internal/discovery"
	"mcra/internal/domain"
	reporterrors "mcra/internal/errors"
)

// JSONSchemaSuite tags its log lines differently from the other suites
const JSONSchemaSuite = "json_schema"

var (
	jsTestMarker         = regexp.MustCompile(`^\[js_test:(.*?)\]`)
	jsonSchemaTestMarker = regexp.MustCompile(`^\[json_schema_test:(.*?)\]`)
)

// MarkerPattern returns the line prefix identifying the test that emitted a
// log line, e.g. "[js_test:find_and_modify] ...".
func MarkerPattern(suite string) *regexp.Regexp {
	if suite == JSONSchemaSuite {
		return jsonSchemaTestMarker
	}
	return jsTestMarker
}

// LogIndexer builds a LogIndex from a suite's raw log
type LogIndexer struct {
	locator       *discovery.Locator
	maxLineLength int
	logger        *slog.Logger
}

// NewLogIndexer creates a new LogIndexer keeping at most maxLineLength
// characters of every line.
func NewLogIndexer(locator *discovery.Locator, maxLineLength int, logger *slog.Logger) *LogIndexer {
	return &LogIndexer{
		locator:       locator,
		maxLineLength: maxLineLength,
		logger:        logger,
	}
}

// Load locates *<suite>.log in dir and indexes it. The located path is returned too.
func (li *LogIndexer) Load(suite, dir string) (domain.LogIndex, string, error) {
	li.logger.Debug("loading log file", "suite", suite, "dir", dir)

	path, err := li.locator.Find(dir, suite, discovery.ExtLog)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, reporterrors.InputDiscoveryf(suite, "open %s: %v", path, err)
	}
	defer f.Close()

	index, err := li.Index(suite, f)
	if err != nil {
		return nil, path, reporterrors.Wrap(err, fmt.Sprintf("index %s", path))
	}
	return index, path, nil
}

// Index scans r line by line. A line starting with the suite's marker is
// appended to the entry of the test it names; other lines are dropped. When
// the named test differs from the previous one its entry starts over, so for
// a test appearing in several blocks only the last block survives.
func (li *LogIndexer) Index(suite string, r io.Reader) (domain.LogIndex, error) {
	pattern := MarkerPattern(suite)
	index := make(domain.LogIndex)
	reader := bufio.NewReader(r)

	current := ""
	skipped := 0
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if match := pattern.FindStringSubmatch(line); match != nil {
				if match[1] != current {
					li.logger.Debug("test changed", "old", current, "current", match[1])
					current = match[1]
					index[current] = []string{}
				}
				index[current] = append(index[current], strings.TrimSpace(truncate(line, li.maxLineLength)))
			} else {
				skipped++
				li.logger.Debug("skipping line", "line", strings.TrimSpace(line))
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
	}

	li.logger.Info("indexed log", "suite", suite, "tests", len(index), "skipped_lines", skipped)
	return index, nil
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
