package fields

import (
	"fmt"
	"strings"
)

// Positional reads a comma separated line by fixed index. Absent trailing
// items default to zero values because records routinely omit them; an item
// that is present but malformed is an error.
type Positional struct {
	items []string
}

// NewPositional splits value on commas (and surrounding whitespace).
func NewPositional(value string) Positional {
	return Positional{items: SplitList(value, CommaSpace)}
}

// NewPositionalWith splits value with a custom delimiter.
func NewPositionalWith(value string, d Delimiter) Positional {
	return Positional{items: SplitList(value, d)}
}

// Len returns the number of items present.
func (p Positional) Len() int {
	return len(p.items)
}

// Has reports whether index i is present.
func (p Positional) Has(i int) bool {
	return i >= 0 && i < len(p.items)
}

// String returns item i or "".
func (p Positional) String(i int) string {
	if !p.Has(i) {
		return ""
	}
	return p.items[i]
}

// Items returns the items from index i on.
func (p Positional) Items(from int) []string {
	if from >= len(p.items) {
		return nil
	}
	return p.items[from:]
}

// Uint reads item i as a maybe-float unsigned integer.
func (p Positional) Uint(i int) (uint32, error) {
	if !p.Has(i) {
		return 0, nil
	}
	n, err := MaybeFloatAsInt(p.items[i])
	if err != nil {
		return 0, fmt.Errorf("index %d: %w", i, err)
	}
	return n, nil
}

// Int reads item i as a maybe-float signed integer.
func (p Positional) Int(i int) (int32, error) {
	if !p.Has(i) {
		return 0, nil
	}
	n, err := MaybeFloatAsSigned(p.items[i])
	if err != nil {
		return 0, fmt.Errorf("index %d: %w", i, err)
	}
	return n, nil
}

// Float reads item i as a float, returning def when absent.
func (p Positional) Float(i int, def float64) (float64, error) {
	if !p.Has(i) {
		return def, nil
	}
	f, err := ParseFloat(p.items[i])
	if err != nil {
		return 0, fmt.Errorf("index %d: %w", i, err)
	}
	return f, nil
}

// Bool reads item i as yes/no, returning false when absent.
func (p Positional) Bool(i int) (bool, error) {
	if !p.Has(i) {
		return false, nil
	}
	b, err := ParseBool(p.items[i])
	if err != nil {
		return false, fmt.Errorf("index %d: %w", i, err)
	}
	return b, nil
}

// Lower returns item i lowercased.
func (p Positional) Lower(i int) string {
	return strings.ToLower(p.String(i))
}
