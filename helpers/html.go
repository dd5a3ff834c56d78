package helpers

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	htmlCommentRegex = regexp.MustCompile(`<!--[\s\S]*?-->`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)

	brTagRegex    = regexp.MustCompile(`<br\s*/?>`)
	blockEndRegex = regexp.MustCompile(`</(?:p|div|li|h[1-6]|blockquote|tr)>`)
)

// StripHTML removes HTML tags from a string and decodes HTML entities.
// Rich-text abstracts exported from reference managers often carry <p> and
// <i> markup.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	s = htmlCommentRegex.ReplaceAllString(s, "")

	// Block-level closing tags become spaces so words do not run together
	s = blockEndRegex.ReplaceAllString(s, " ")
	s = brTagRegex.ReplaceAllString(s, " ")

	s = htmlTagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiSpaceRegex.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// IsHTML checks if a string appears to contain HTML markup.
func IsHTML(s string) bool {
	return htmlTagRegex.MatchString(s)
}

// TruncateText truncates text to at most maxLen bytes, adding ellipsis if
// needed. Cuts never split a UTF-8 sequence.
func TruncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return cutAtRune(s, maxLen)
	}

	// Try to truncate at a word boundary
	truncated := cutAtRune(s, maxLen-3)
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}

// cutAtRune returns the longest prefix of s no longer than n bytes that
// ends on a rune boundary.
func cutAtRune(s string, n int) string {
	for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
