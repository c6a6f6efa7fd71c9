package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString trims whitespace, drops null bytes and caps the length in runes.
func SanitizeString(input string, maxLen int) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if maxLen > 0 {
		if runes := []rune(input); len(runes) > maxLen {
			input = string(runes[:maxLen])
		}
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeText strips markup and normalizes user supplied text. Entities
// are decoded again since the result is served as JSON, not HTML.
func SanitizeText(input string, maxLen int) string {
	input = SanitizeString(input, 0)
	return SanitizeString(html.UnescapeString(SanitizeHTML(input)), maxLen)
}

// ValidateImageURL accepts empty values and absolute http(s) URLs.
func ValidateImageURL(url string) bool {
	if url == "" {
		return true
	}
	if strings.ContainsAny(url, " \t\n\"'<>") {
		return false
	}
	return strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://")
}
