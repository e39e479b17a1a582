package availability

import "fmt"

// LookupError reports a recruit option naming a unit that does not exist.
type LookupError struct {
	Unit     string
	Building string
	Level    string
	Line     int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("line %d: %s/%s recruits undefined unit %q", e.Line, e.Building, e.Level, e.Unit)
}

// DuplicateUnitError reports a unit id defined twice.
type DuplicateUnitError struct {
	ID    string
	Line  int
	First int
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("line %d: unit %q already defined at line %d", e.Line, e.ID, e.First)
}
