package records

import "strings"

// Pair is one keyword/value line of a record.
type Pair struct {
	Key   string
	Value string
	Line  Line
}

// Record is an ordered run of lines that belong to one logical block.
// Keywords are not unique: repeated keys such as officer or unit are kept
// in order, and Get exposes the first occurrence as the deduplicated view.
type Record struct {
	Lines []Line

	pairs []Pair
	index map[string]int
}

// NewRecord builds a record from already grouped lines.
func NewRecord(lines []Line) Record {
	rec := Record{Lines: lines}
	rec.build()
	return rec
}

func (r *Record) build() {
	r.pairs = make([]Pair, 0, len(r.Lines))
	r.index = make(map[string]int, len(r.Lines))
	for _, line := range r.Lines {
		key, value := SplitPair(line.Text)
		r.pairs = append(r.pairs, Pair{Key: key, Value: value, Line: line})
		if _, seen := r.index[key]; !seen {
			r.index[key] = len(r.pairs) - 1
		}
	}
}

// Head returns the line that opened the record.
func (r Record) Head() Line {
	if len(r.Lines) == 0 {
		return Line{}
	}
	return r.Lines[0]
}

// Pairs returns every keyword/value pair in source order.
func (r Record) Pairs() []Pair {
	return r.pairs
}

// Get returns the first pair with the given keyword.
func (r Record) Get(key string) (Pair, bool) {
	idx, ok := r.index[key]
	if !ok {
		return Pair{}, false
	}
	return r.pairs[idx], true
}

// All returns every pair with the given keyword in source order.
func (r Record) All(key string) []Pair {
	var out []Pair
	for _, p := range r.pairs {
		if p.Key == key {
			out = append(out, p)
		}
	}
	return out
}

// Keys returns the distinct keywords of the record in first-seen order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.index))
	seen := make(map[string]struct{}, len(r.index))
	for _, p := range r.pairs {
		if _, ok := seen[p.Key]; ok {
			continue
		}
		seen[p.Key] = struct{}{}
		keys = append(keys, p.Key)
	}
	return keys
}

// HasPrefix reports whether any keyword of the record starts with prefix.
func (r Record) HasPrefix(prefix string) bool {
	for key := range r.index {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
