package sprites

import "fmt"

// CatalogError reports a malformed sprite catalog.
type CatalogError struct {
	Section string
	Index   int
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	msg := fmt.Sprintf("sprite catalog %s %d: %s", e.Section, e.Index, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}
