// Package errors provides the error kinds that abort a report run.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal report error.
type Kind int

const (
	// KindRuntime is anything not covered by a more specific kind.
	KindRuntime Kind = iota
	// KindInputDiscovery means a suite's result or log file could not be located.
	KindInputDiscovery
	// KindParse means a structured result file could not be decoded.
	KindParse
	// KindConfig means the configuration is invalid.
	KindConfig
	// KindOutput means a report destination could not be written.
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindInputDiscovery:
		return "input discovery"
	case KindParse:
		return "parse"
	case KindConfig:
		return "config"
	case KindOutput:
		return "output"
	default:
		return "runtime"
	}
}

// ReportError is the error type returned by the report pipeline.
type ReportError struct {
	Kind    Kind
	Suite   string // Suite being processed, if any
	Path    string // File involved, if any
	Message string
	Cause   error
}

func (e *ReportError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Suite != "" {
		msg = fmt.Sprintf("[%s] %s", e.Suite, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}

// InputDiscovery creates an error for a missing or ambiguous suite file.
func InputDiscovery(suite, message string) *ReportError {
	return &ReportError{Kind: KindInputDiscovery, Suite: suite, Message: message}
}

// InputDiscoveryf creates an input discovery error with formatting.
func InputDiscoveryf(suite, format string, args ...interface{}) *ReportError {
	return InputDiscovery(suite, fmt.Sprintf(format, args...))
}

// Parse creates an error for a malformed result file.
func Parse(suite, path string, cause error) *ReportError {
	return &ReportError{Kind: KindParse, Suite: suite, Path: path, Message: "malformed result file", Cause: cause}
}

// Config creates a configuration error.
func Config(message string) *ReportError {
	return &ReportError{Kind: KindConfig, Message: message}
}

// Configf creates a configuration error with formatting.
func Configf(format string, args ...interface{}) *ReportError {
	return Config(fmt.Sprintf(format, args...))
}

// Output creates an error for a destination that could not be written.
func Output(path string, cause error) *ReportError {
	return &ReportError{Kind: KindOutput, Path: path, Message: "write report", Cause: cause}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *ReportError {
	return &ReportError{Kind: KindRuntime, Message: message, Cause: err}
}

// IsKind reports whether err, or any error it wraps, is a ReportError of kind k.
func IsKind(err error, k Kind) bool {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Kind == k
	}
	return false
}
