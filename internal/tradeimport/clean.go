package tradeimport

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// numberCleaner normalizes locale-formatted decimal strings
type numberCleaner struct {
	decimalSep  string
	thousandSep string
}

// parseFloat removes spaces and the thousand separator, maps the decimal
// separator and any comma to a period, then reads the longest numeric
// prefix. Input without a numeric prefix yields 0.
func (c numberCleaner) parseFloat(raw string) float64 {
	if raw == "" {
		return 0
	}

	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if c.thousandSep != "" {
		s = strings.ReplaceAll(s, c.thousandSep, "")
	}
	if c.decimalSep != "" && c.decimalSep != "." {
		s = strings.ReplaceAll(s, c.decimalSep, ".")
	}
	s = strings.ReplaceAll(s, ",", ".")

	prefix := numericPrefix(s)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		// only range errors reach here; ParseFloat returns ±Inf for those
		if math.IsInf(f, 0) {
			return f
		}
		return 0
	}
	return f
}

// numericPrefix returns the longest prefix of s shaped like
// [+-]digits[.digits][e[+-]digits] (digits may be absent on one side of the point)
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - intStart

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}

	return s[:i]
}

// parseLenientInt skips leading whitespace, accepts an optional sign and
// reads digits up to the first non-digit. No digits yields 0; values
// outside int64 saturate.
func parseLenientInt(raw string) int64 {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0
	}

	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		if s[0] == '-' {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return n
}

// truncateRunes caps s at max runes without splitting a character
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
