package storage

import (
	"mcra/internal/domain"
)

// RunInfo is the per-run data stamped on every row
type RunInfo struct {
	RunID           string
	Date            string // YYYY-MM-DD
	PreviewFeatures string
}

// Sink receives report rows suite by suite. Rows written before a failure
// stay written.
type Sink interface {
	WriteSuite(suite string, outcomes []domain.TestOutcome) error
	Close() error
}

// SnapshotStore persists and loads the last report run (e.g. for the failures viewer).
type SnapshotStore interface {
	Save(snapshot *domain.ReportSnapshot) error
	Load() (*domain.ReportSnapshot, error)
}
