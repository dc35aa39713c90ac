package sweref

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxCoordinateLen caps free-text coordinate entry.
	MaxCoordinateLen = 200
	// MaxQueryLen caps the general search box input.
	MaxQueryLen = 256
)

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Sanitize cleans free-text coordinate input: markup and control
// characters are dropped, whitespace runs collapse to a single space and
// the result is trimmed and truncated to MaxCoordinateLen runes.
// Idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(raw string) string {
	return sanitizeTo(raw, MaxCoordinateLen)
}

// SanitizeQuery is the general search box variant with a longer limit.
func SanitizeQuery(raw string) string {
	return sanitizeTo(raw, MaxQueryLen)
}

func sanitizeTo(raw string, maxLen int) string {
	s := tagRe.ReplaceAllString(raw, " ")

	var sb strings.Builder

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		case unicode.IsControl(r) || !unicode.IsPrint(r):
			// drop
		default:
			sb.WriteRune(r)
		}
	}

	s = whitespaceRe.ReplaceAllString(sb.String(), " ")
	s = strings.TrimSpace(s)

	if r := []rune(s); len(r) > maxLen {
		s = strings.TrimSpace(string(r[:maxLen]))
	}

	return s
}
