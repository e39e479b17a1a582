package fields

import (
	"github.com/jonathan/mod-roster/internal/records"
)

// Fields gives typed, error-reporting access to one record's keywords.
type Fields struct {
	rec records.Record
}

// New wraps a record.
func New(rec records.Record) Fields {
	return Fields{rec: rec}
}

// Record returns the wrapped record.
func (f Fields) Record() records.Record {
	return f.rec
}

// Ident returns the identifying head line of the record.
func (f Fields) Ident() string {
	return f.rec.Head().Text
}

// Required returns the first pair for key or a DecodeError naming the
// missing keyword and the record.
func (f Fields) Required(key string) (records.Pair, error) {
	p, ok := f.rec.Get(key)
	if !ok {
		return records.Pair{}, &DecodeError{
			Record:  f.Ident(),
			Field:   key,
			Line:    f.rec.Head().Number,
			Message: "missing required keyword",
		}
	}
	return p, nil
}

// Optional returns the first pair for key.
func (f Fields) Optional(key string) (records.Pair, bool) {
	return f.rec.Get(key)
}

// All returns every pair for key.
func (f Fields) All(key string) []records.Pair {
	return f.rec.All(key)
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f.rec.Get(key)
	return ok
}

// Error wraps cause as a DecodeError for the given pair.
func (f Fields) Error(p records.Pair, cause error) error {
	return &DecodeError{
		Record:  f.Ident(),
		Field:   p.Key,
		Line:    p.Line.Number,
		Message: "invalid value",
		Cause:   cause,
	}
}

// Uint decodes the value of a required maybe-float keyword.
func (f Fields) Uint(key string) (uint32, error) {
	p, err := f.Required(key)
	if err != nil {
		return 0, err
	}
	n, err := MaybeFloatAsInt(p.Value)
	if err != nil {
		return 0, f.Error(p, err)
	}
	return n, nil
}

// OptionalUint decodes an optional maybe-float keyword, def when absent.
func (f Fields) OptionalUint(key string, def uint32) (uint32, error) {
	p, ok := f.Optional(key)
	if !ok {
		return def, nil
	}
	n, err := MaybeFloatAsInt(p.Value)
	if err != nil {
		return 0, f.Error(p, err)
	}
	return n, nil
}

// OptionalFloat decodes an optional float keyword, def when absent.
func (f Fields) OptionalFloat(key string, def float64) (float64, error) {
	p, ok := f.Optional(key)
	if !ok {
		return def, nil
	}
	v, err := ParseFloat(p.Value)
	if err != nil {
		return 0, f.Error(p, err)
	}
	return v, nil
}

// String returns the value of a required keyword.
func (f Fields) String(key string) (string, error) {
	p, err := f.Required(key)
	if err != nil {
		return "", err
	}
	return p.Value, nil
}

// OptionalString returns the value of an optional keyword or "".
func (f Fields) OptionalString(key string) string {
	p, _ := f.Optional(key)
	return p.Value
}

// List splits the value of an optional keyword; nil when absent.
func (f Fields) List(key string, d Delimiter) []string {
	p, ok := f.Optional(key)
	if !ok {
		return nil
	}
	return SplitList(p.Value, d)
}

// Positional returns the positional reader of a required keyword.
func (f Fields) Positional(key string) (Positional, records.Pair, error) {
	p, err := f.Required(key)
	if err != nil {
		return Positional{}, records.Pair{}, err
	}
	return NewPositional(p.Value), p, nil
}

// OptionalPositional returns the positional reader of an optional keyword.
func (f Fields) OptionalPositional(key string) (Positional, records.Pair, bool) {
	p, ok := f.Optional(key)
	if !ok {
		return Positional{}, records.Pair{}, false
	}
	return NewPositional(p.Value), p, true
}
