package execution

import (
	"mcra/internal/storage"
)

// Executor processes suites and hands their rows to sinks
type Executor interface {
	Execute(suites []string, sinks ...storage.Sink) (*Result, error)
}

var _ Executor = (*Pipeline)(nil)
