package text

import "fmt"

// FormatError reports a malformed string table.
type FormatError struct {
	// Offset is a byte offset for binary tables and a line number for text
	Offset  int64
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("string table at %d: %s", e.Offset, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
