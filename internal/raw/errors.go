// Package raw decodes each mod data file format into typed records.
package raw

import (
	"github.com/jonathan/mod-roster/internal/records"
)

func unexpectedLine(line records.Line) error {
	return &records.ExtractError{
		Line:    line.Number,
		Message: "unexpected line",
		Context: line.Text,
	}
}
