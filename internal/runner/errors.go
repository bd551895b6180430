package runner

import (
	"errors"
	"fmt"
)

// RunError represents an error detected while preparing or executing
// a test script, as opposed to a test failing on its own terms.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// Test identifies the affected test, if any.
	Test string
}

// RunErrorCode categorizes runner errors.
type RunErrorCode string

const (
	// ErrCodeNoRunLines indicates a test file with no RUN directives.
	ErrCodeNoRunLines RunErrorCode = "NO_RUN_LINES"

	// ErrCodeUnreadable indicates the test file could not be read.
	ErrCodeUnreadable RunErrorCode = "UNREADABLE"

	// ErrCodeBadDirective indicates a malformed directive line, e.g.
	// a REQUIRES with an empty feature list.
	ErrCodeBadDirective RunErrorCode = "BAD_DIRECTIVE"
)

func (e *RunError) Error() string {
	if e.Test != "" {
		return fmt.Sprintf("%s: %s (test=%s)", e.Code, e.Message, e.Test)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNoRunLines reports whether err is a missing-RUN-directives error.
// Uses errors.As to handle wrapped errors.
func IsNoRunLines(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == ErrCodeNoRunLines
	}
	return false
}
