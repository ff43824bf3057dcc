package products

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownTitle is shown when no title can be read from the URL.
const UnknownTitle = "Unknown Product"

var flipkartURLPattern = regexp.MustCompile(`(?i)^https?://(?:www\.)?flipkart\.com/.*/p/.*`)

// IsValidURL reports whether s looks like a Flipkart product page.
func IsValidURL(s string) bool {
	return flipkartURLPattern.MatchString(s)
}

// ExtractTitle builds a display title from the first hyphenated path segment
// of s. It never fails: anything unusable yields UnknownTitle.
func ExtractTitle(s string) string {
	clean, _, _ := strings.Cut(s, "?")
	for _, part := range strings.Split(clean, "/") {
		if !strings.Contains(part, "-") {
			continue
		}
		return capitalizeWords(strings.ReplaceAll(part, "-", " "))
	}
	return UnknownTitle
}

// capitalizeWords upper-cases every word character that follows a non-word
// character (or starts the string).
func capitalizeWords(s string) string {
	if !utf8.ValidString(s) {
		return UnknownTitle
	}
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		isWord := r == '_' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
		if isWord && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = isWord
	}
	return b.String()
}
