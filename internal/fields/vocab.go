package fields

import "strings"

// Token is a closed-vocabulary value together with the raw text it was
// decoded from. Unrecognized text keeps Known false so callers can skip it
// without losing what was present.
type Token[T comparable] struct {
	Value T
	Raw   string
	Known bool
}

// Vocabulary is a fixed, case-insensitive string to enum table.
type Vocabulary[T comparable] struct {
	table   map[string]T
	unknown T
}

// NewVocabulary builds a table whose unrecognized tokens map to unknown.
func NewVocabulary[T comparable](unknown T, table map[string]T) Vocabulary[T] {
	lowered := make(map[string]T, len(table))
	for k, v := range table {
		lowered[strings.ToLower(k)] = v
	}
	return Vocabulary[T]{table: lowered, unknown: unknown}
}

// Lookup decodes one token.
func (v Vocabulary[T]) Lookup(raw string) Token[T] {
	raw = strings.TrimSpace(raw)
	if val, ok := v.table[strings.ToLower(raw)]; ok {
		return Token[T]{Value: val, Raw: raw, Known: true}
	}
	return Token[T]{Value: v.unknown, Raw: raw}
}

// Value decodes one token and drops the raw text.
func (v Vocabulary[T]) Value(raw string) T {
	return v.Lookup(raw).Value
}

// LookupAll decodes each token of a list.
func (v Vocabulary[T]) LookupAll(raws []string) []Token[T] {
	out := make([]Token[T], 0, len(raws))
	for _, r := range raws {
		out = append(out, v.Lookup(r))
	}
	return out
}
