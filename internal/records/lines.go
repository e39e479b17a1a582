package records

import (
	"bufio"
	"strings"
	"unicode"
)

// DefaultCommentMarker starts an end-of-line comment in most data files.
const DefaultCommentMarker = ";"

const maxLineLength = 1 << 20

// Line is one cleaned physical line of source text.
type Line struct {
	// Number is the 1-based physical line number in the original text
	Number int
	// Text is the comment-stripped, trimmed content
	Text string
}

// CleanLines strips everything after the comment marker on each physical
// line, trims surrounding whitespace and drops lines left empty. Line numbers
// refer to the original text. LF, CRLF and bare CR endings are accepted.
func CleanLines(text string, marker string) ([]Line, error) {
	if marker == "" {
		marker = DefaultCommentMarker
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(scanDataLines)

	var lines []Line
	number := 0
	for scanner.Scan() {
		number++
		raw := scanner.Text()
		if idx := strings.Index(raw, marker); idx >= 0 {
			raw = raw[:idx]
		}
		cleaned := strings.TrimFunc(raw, func(r rune) bool {
			return unicode.IsSpace(r) || r == '\ufeff'
		})
		if cleaned == "" {
			continue
		}
		lines = append(lines, Line{Number: number, Text: cleaned})
	}
	if err := scanner.Err(); err != nil {
		return nil, &ExtractError{Line: number + 1, Message: "error reading input: " + err.Error()}
	}
	return lines, nil
}

// SplitPair splits a line into keyword and value on the first run of
// whitespace. A bare keyword yields an empty value.
func SplitPair(text string) (string, string) {
	text = strings.TrimSpace(text)
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimSpace(text[idx:])
}

// FirstToken returns the first whitespace-delimited token of text.
func FirstToken(text string) string {
	key, _ := SplitPair(text)
	return key
}

// scanDataLines is bufio.ScanLines extended with bare CR line endings.
func scanDataLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				return 0, nil, nil
			}
			return i + 1, data[:i], nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
