package fields

import (
	"regexp"
	"strings"
)

// Delimiter is the separator pattern of a list-valued field.
type Delimiter struct {
	re *regexp.Regexp
}

var (
	// Comma splits on single commas.
	Comma = Delimiter{re: regexp.MustCompile(`,`)}
	// CommaSpace splits on a comma followed by optional whitespace.
	CommaSpace = Delimiter{re: regexp.MustCompile(`,\s*`)}
	// Whitespace splits on runs of whitespace.
	Whitespace = Delimiter{re: regexp.MustCompile(`\s+`)}
	// CommaOrWhitespace splits on any run of commas and whitespace.
	CommaOrWhitespace = Delimiter{re: regexp.MustCompile(`[,\s]+`)}
)

// NewDelimiter compiles a custom separator pattern.
func NewDelimiter(pattern string) (Delimiter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Delimiter{}, err
	}
	return Delimiter{re: re}, nil
}

// SplitList splits s on d, trims every item and drops empty ones.
func SplitList(s string, d Delimiter) []string {
	if d.re == nil {
		d = CommaSpace
	}
	parts := d.re.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Unquote strips one pair of surrounding double quotes.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
