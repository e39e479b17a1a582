// Package fields decodes keyword/value records into typed values.
package fields

import "fmt"

// DecodeError reports a missing keyword or a value that failed its typed parse.
type DecodeError struct {
	// Record is the identifying head line of the record being decoded
	Record string
	// Field is the keyword being decoded
	Field string
	// Line is the 1-based source line of the value, or of the record head
	// when the keyword is absent
	Line    int
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("field %q: %s", e.Field, e.Message)
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Record != "" {
		msg = fmt.Sprintf("%s (record %q)", msg, e.Record)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
