package records

// StartFunc reports whether a cleaned line opens a new record.
type StartFunc func(text string) bool

// StartsWith returns a StartFunc matching lines whose first token is one of
// the given keywords.
func StartsWith(keywords ...string) StartFunc {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	return func(text string) bool {
		_, ok := set[FirstToken(text)]
		return ok
	}
}

// splitter is the record folding state machine: it owns the record under
// construction and the current brace depth.
type splitter struct {
	start   StartFunc
	records []Record
	current []Line
	depth   int
	last    Line
}

func (s *splitter) flush() {
	if len(s.current) == 0 {
		return
	}
	s.records = append(s.records, NewRecord(s.current))
	s.current = nil
}

func (s *splitter) feed(line Line) error {
	if s.depth == 0 && s.start(line.Text) {
		s.flush()
	}
	s.current = append(s.current, line)
	s.last = line

	s.depth += braceDelta(line.Text)
	if s.depth < 0 {
		return newExtractError(line, "unexpected closing brace")
	}
	return nil
}

func (s *splitter) finish() ([]Record, error) {
	if s.depth != 0 {
		return nil, newExtractError(s.last, "missing closing brace")
	}
	s.flush()
	return s.records, nil
}

// Split folds cleaned lines into records. A line accepted by start opens a
// new record when it appears outside any brace block; every other line joins
// the record currently being built. Lines before the first start line form a
// leading record of their own, so no line is ever dropped.
func Split(lines []Line, start StartFunc) ([]Record, error) {
	s := &splitter{start: start}
	for _, line := range lines {
		if err := s.feed(line); err != nil {
			return nil, err
		}
	}
	return s.finish()
}

// SplitText cleans text with the default comment marker and splits it.
func SplitText(text string, start StartFunc) ([]Record, error) {
	lines, err := CleanLines(text, DefaultCommentMarker)
	if err != nil {
		return nil, err
	}
	return Split(lines, start)
}

// braceDelta counts opening minus closing braces outside double quotes.
func braceDelta(text string) int {
	delta := 0
	quoted := false
	for _, r := range text {
		switch r {
		case '"':
			quoted = !quoted
		case '{':
			if !quoted {
				delta++
			}
		case '}':
			if !quoted {
				delta--
			}
		}
	}
	return delta
}
