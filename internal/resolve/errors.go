package resolve

import "fmt"

// ReferenceError reports a name that points at nothing.
type ReferenceError struct {
	Kind string
	Name string
	From string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s references undefined %s %q", e.From, e.Kind, e.Name)
}

// ValidationError wraps a failed validation of the resolved model.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return "resolved model is invalid: " + e.Cause.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
