package grading

import (
	"regexp"
	"strings"
)

var reBigOWrapper = regexp.MustCompile(`(?i)o\s*\(\s*(.+?)\s*\)`)

// extractBigO pulls the inner expression out of an O(...) wrapper, or
// returns the trimmed text unchanged when no wrapper is present.
func extractBigO(s string) string {
	if m := reBigOWrapper.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return strings.TrimSpace(s)
}

// normalizeBigO collapses the notational noise in growth-rate answers so
// "n^2", "n**2" and "n ^ 2" all read the same.
func normalizeBigO(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "^", "**")
	s = strings.ReplaceAll(s, "log(n)", "logn")
	return s
}
