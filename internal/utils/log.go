package utils

import "strings"

// TruncateForLog collapses whitespace runs in s and cuts it to limit runes,
// marking a cut with "...". Labels scraped from pages often span lines.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	runes := []rune(strings.Join(strings.Fields(s), " "))
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return string(runes)
}
