// Package util provides small string helpers used when reading configuration text.
package util

import (
	"strconv"
	"strings"
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// NormalizeToken folds an enum token for lookup: surrounding whitespace and
// double quotes are dropped, the token is lower-cased and the separators
// '_', '-' and ' ' are removed. "INPUT_CONTEXT" and "Context" become
// "inputcontext" and "context".
func NormalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(TrimQuotes(strings.TrimSpace(s))))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// ParseFloat parses a float written in the invariant culture. A trailing
// C-style 'f' suffix is accepted ("-0.5f"). ok is false when s is not a number.
func ParseFloat(s string) (v float32, ok bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "f"), "F")
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

// ParseUint parses a decimal or 0x prefixed hexadecimal integer.
func ParseUint(s string) (v uint64, ok bool) {
	s = strings.TrimSpace(TrimQuotes(strings.TrimSpace(s)))
	if s == "" {
		return 0, false
	}
	var err error
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 64)
	} else {
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, false
	}
	return v, true
}
