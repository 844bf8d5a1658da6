package parser

import (
	"io"

	"mcra/internal/domain"
)

// Indexer groups a suite's log lines by test name
type Indexer interface {
	Index(suite string, r io.Reader) (domain.LogIndex, error)
}

// Extractor derives an error message from a failing test's log lines
type Extractor interface {
	Extract(lines []string) domain.ErrMsg
}

var (
	_ Indexer   = (*LogIndexer)(nil)
	_ Extractor = (*ErrorExtractor)(nil)
)
