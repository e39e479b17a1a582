package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaybeFloatAsInt parses a non-negative number written either as an integer
// or as a float. The fractional part is discarded, not rounded, so "3" and
// "3.7" both yield 3.
func MaybeFloatAsInt(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(n), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if f < 0 || f >= math.MaxUint32+1 {
		return 0, fmt.Errorf("number %q out of range", s)
	}
	return uint32(math.Trunc(f)), nil
}

// MaybeFloatAsSigned is MaybeFloatAsInt for values that may be negative,
// truncating toward zero.
func MaybeFloatAsSigned(s string) (int32, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(n), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("number %q out of range", s)
	}
	return int32(math.Trunc(f)), nil
}

// ParseFloat parses a float token.
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", s)
	}
	return f, nil
}

// ParseBool accepts the yes/no spellings used by data files.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
