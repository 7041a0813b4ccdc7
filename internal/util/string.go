package util

import (
	"strings"

	"golang.org/x/text/cases"
)

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Fold returns the Unicode case-folded form of s, for caseless comparison.
// Casers keep state, so each call gets its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr occurs in s ignoring case.
// The empty substring is contained in every string.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(substr))
}

// FirstDigitRun returns the first maximal run of ASCII digits in s.
func FirstDigitRun(s string) (string, bool) {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return "", false
	}
	end := strings.IndexFunc(s[start:], func(r rune) bool { return !isDigit(r) })
	if end < 0 {
		return s[start:], true
	}
	return s[start : start+end], true
}

// FirstRunes returns at most n leading runes of s.
func FirstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
