// Package records splits loosely structured mod data text into logical records.
package records

import "fmt"

// ExtractError reports a malformed record boundary or unbalanced nesting.
type ExtractError struct {
	// Line is the 1-based source line where the problem was detected
	Line int

	// Message describes what went wrong
	Message string

	// Context is the offending cleaned line, if any
	Context string
}

func (e *ExtractError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("line %d: %s (context: %q)", e.Line, e.Message, e.Context)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func newExtractError(line Line, message string) error {
	return &ExtractError{
		Line:    line.Number,
		Message: message,
		Context: line.Text,
	}
}
