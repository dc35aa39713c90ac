package sweref

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Format tells how the two coordinate values were written.
type Format string

const (
	FormatLabeled        Format = "labeled"
	FormatCommaSeparated Format = "comma"
	FormatSpaceSeparated Format = "space"
	FormatUnknown        Format = "unknown"
)

// ParsedCoordinate is the outcome of one successful Parse call.
type ParsedCoordinate struct {
	Easting       float64 `json:"easting"`
	Northing      float64 `json:"northing"`
	Format        Format  `json:"format"`
	SanitizedText string  `json:"sanitized_text"`
	Warning       string  `json:"warning,omitempty"`
}

var (
	labelRe = regexp.MustCompile(`(?i)\b([en])\s*[:=]?\s*([-+]?[\d .,]*\d)`)
	commaRe = regexp.MustCompile(`\d\s*,\s*\d`)
	spaceRe = regexp.MustCompile(`\d\s+\d`)

	// Maximal numeric-ish runs: signed digits with embedded grouping and
	// decimal characters. Individual candidates are carved out of a run
	// by splitChunk.
	chunkRe = regexp.MustCompile(`[-+]?\d[\d .,]*`)
)

// Parse detects the input format of sanitized free text, extracts two
// numeric values and resolves which is easting and which is northing.
// Failures come back as a *KeyError.
func Parse(sanitized string) (*ParsedCoordinate, error) {
	if sanitized == "" {
		return nil, NewKeyError(ErrorEmpty)
	}

	if len([]rune(sanitized)) > MaxCoordinateLen {
		return nil, NewKeyError(ErrorTooLong)
	}

	format := detectFormat(sanitized)

	if format == FormatLabeled {
		if res, ok := parseLabeled(sanitized); ok {
			res.SanitizedText = sanitized

			return res, nil
		}

		format = FormatUnknown
	}

	a, b, ok := extractPair(sanitized)
	if !ok {
		return nil, NewKeyError(ErrorParse)
	}

	if looksGeographic(a, b) {
		return nil, NewKeyError(ErrorNotSweref)
	}

	order := resolveAxisOrder(a, b)
	if order == nil {
		return nil, NewKeyError(ErrorParse)
	}

	return &ParsedCoordinate{
		Easting:       order.easting,
		Northing:      order.northing,
		Format:        format,
		SanitizedText: sanitized,
		Warning:       order.warning,
	}, nil
}

func detectFormat(s string) Format {
	if hasLabels(s) {
		return FormatLabeled
	}

	if commaRe.MatchString(s) {
		return FormatCommaSeparated
	}

	if spaceRe.MatchString(s) {
		return FormatSpaceSeparated
	}

	return FormatUnknown
}

func hasLabels(s string) bool {
	var hasE, hasN bool

	for _, m := range labelRe.FindAllStringSubmatch(s, -1) {
		switch strings.ToLower(m[1]) {
		case "e":
			hasE = true
		case "n":
			hasN = true
		}
	}

	return hasE && hasN
}

// parseLabeled extracts E/N labeled values. A repeated label wins with
// its last occurrence.
func parseLabeled(s string) (*ParsedCoordinate, bool) {
	var eVal, nVal float64
	var hasE, hasN bool

	for _, m := range labelRe.FindAllStringSubmatch(s, -1) {
		v, ok := parseNumber(m[2])
		if !ok {
			continue
		}

		switch strings.ToLower(m[1]) {
		case "e":
			eVal, hasE = v, true
		case "n":
			nVal, hasN = v, true
		}
	}

	if !hasE || !hasN {
		return nil, false
	}

	return &ParsedCoordinate{Easting: eVal, Northing: nVal, Format: FormatLabeled}, true
}

func extractPair(s string) (float64, float64, bool) {
	cands := extractCandidates(s)

	if len(cands) < 2 {
		cands = splitFallback(s)
	}

	if len(cands) != 2 {
		return 0, 0, false
	}

	a, ok := parseNumber(cands[0])
	if !ok {
		return 0, 0, false
	}

	b, ok := parseNumber(cands[1])
	if !ok {
		return 0, 0, false
	}

	return a, b, true
}

func extractCandidates(s string) []string {
	chunks := chunkRe.FindAllString(s, -1)

	var res []string

	for _, chunk := range chunks {
		// a single run must hold both values, so a comma inside it
		// separates the pair rather than marking a decimal
		res = append(res, splitChunk(strings.Trim(chunk, " .,;"), len(chunks) == 1)...)
	}

	return res
}

// splitChunk carves one or two candidates out of a numeric run. A space
// run that is not triplet grouping separates values; a comma separates
// values when the run has to hold the whole pair or when the decimal
// reading is implausible (more than three digits after a single
// separator).
func splitChunk(c string, preferPair bool) []string {
	if c == "" {
		return nil
	}

	if strings.Contains(c, " ") && !spaceGroupRe.MatchString(c) {
		var res []string

		for _, tok := range strings.Fields(c) {
			res = append(res, splitChunk(strings.Trim(tok, ".,;"), false)...)
		}

		return res
	}

	if preferPair {
		if i := pairComma(c); i >= 0 {
			return []string{c[:i], c[i+1:]}
		}
	}

	_, whole := NormalizeNumber(c)

	if whole && plausibleDecimal(c) {
		return []string{c}
	}

	if i := pairComma(c); i >= 0 {
		return []string{c[:i], c[i+1:]}
	}

	return []string{c}
}

// plausibleDecimal reports whether reading c's single separator as a
// decimal point is believable. "13,5" is; "500000,6500000" is not.
func plausibleDecimal(c string) bool {
	last := strings.LastIndexAny(c, ".,")
	if last < 0 {
		return true
	}

	if strings.Count(c, ".")+strings.Count(c, ",") > 1 {
		return true
	}

	return len(c)-last-1 <= 3
}

func pairComma(c string) int {
	for i := 0; i < len(c); i++ {
		if c[i] != ',' {
			continue
		}

		if _, ok := NormalizeNumber(c[:i]); !ok {
			continue
		}

		if _, ok := NormalizeNumber(c[i+1:]); ok {
			return i
		}
	}

	return -1
}

func splitFallback(s string) []string {
	res := make([]string, 0, 2)

	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, ",;")
		if tok != "" {
			res = append(res, tok)
		}
	}

	return res
}

func parseNumber(raw string) (float64, bool) {
	norm, ok := NormalizeNumber(raw)
	if !ok {
		return 0, false
	}

	v, err := strconv.ParseFloat(norm, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}

	return v, true
}
