// Package utils provides shared utilities for text and logging.
package utils

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Snippet returns the text around the given rune offset, up to radius runes
// on each side, with "..." marking trimmed edges. Offsets out of range are
// clamped.
func Snippet(text string, offset, radius int) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	start := offset - radius
	if start < 0 {
		start = 0
	}
	end := offset + radius
	if end > len(runes) {
		end = len(runes)
	}
	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}
