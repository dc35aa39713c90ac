package sweref

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxRawDigits        = 18
	maxNormalizedDigits = 15
	zeroEpsilon         = 1e-3
	maxMagnitude        = 1e8
)

var (
	multiSepRe   = regexp.MustCompile(`[.,]{3,}`)
	spaceGroupRe = regexp.MustCompile(`^\d{1,3}( \d{3})+([.,]\d+)?$`)
	normalizedRe = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)
)

// NormalizeNumber turns a locale-ambiguous numeric string ("1 234,56",
// "1.234.567", "-123456.78") into a canonical form parseable by
// strconv.ParseFloat. Returns false for malformed separator patterns and
// for values outside the plausible range.
func NormalizeNumber(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if countDigits(s) > maxRawDigits {
		return "", false
	}

	if multiSepRe.MatchString(s) {
		return "", false
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign = string(s[0])
		s = s[1:]
	}

	if strings.ContainsAny(s, "+-") {
		return "", false
	}

	if strings.Contains(s, " ") {
		if !spaceGroupRe.MatchString(s) {
			return "", false
		}

		s = strings.ReplaceAll(s, " ", "")
	}

	if s == "" || isSep(s[0]) || isSep(s[len(s)-1]) {
		return "", false
	}

	s = resolveSeparators(s)

	res := sign + s
	if !normalizedRe.MatchString(res) {
		return "", false
	}

	if countDigits(res) > maxNormalizedDigits {
		return "", false
	}

	v, err := strconv.ParseFloat(res, 64)
	if err != nil {
		return "", false
	}

	if math.Abs(v) > maxMagnitude {
		return "", false
	}

	if math.Abs(v) < zeroEpsilon {
		return "0", true
	}

	return res, true
}

// resolveSeparators decides which of the '.'/',' occurrences is the
// decimal point. A single separator is the decimal point. With several,
// the last one is, all earlier ones being thousands grouping, except when
// the last separator is followed by exactly three digits at the end of
// the string: earlier separators make the grouping reading unambiguous,
// so every separator is grouping and there is no decimal part.
func resolveSeparators(s string) string {
	last := strings.LastIndexAny(s, ".,")
	if last < 0 {
		return s
	}

	count := strings.Count(s, ".") + strings.Count(s, ",")

	if count == 1 {
		return s[:last] + "." + s[last+1:]
	}

	tail := s[last+1:]
	if len(tail) == 3 && countDigits(tail) == 3 {
		return stripSeps(s)
	}

	return stripSeps(s[:last]) + "." + tail
}

func stripSeps(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == ',' {
			return -1
		}

		return r
	}, s)
}

func countDigits(s string) int {
	n := 0

	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}

	return n
}

func isSep(b byte) bool {
	return b == '.' || b == ','
}
