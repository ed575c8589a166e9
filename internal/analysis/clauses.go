package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	defaultClauseLen    = 1200
	defaultContextLen   = 800
	contextScanStride   = 50
	minContextKeywordLn = 3
)

var clauseBoundary = regexp.MustCompile(`\n\s*\n|\n\d+\.|\n- `)

// SplitClauses breaks document text on blank lines, numbered items, and
// bullets, then accumulates parts up to maxLen characters per clause.
func SplitClauses(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = defaultClauseLen
	}

	parts := clauseBoundary.Split(text, -1)
	var clauses []string
	var current []string
	currentLen := 0

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if currentLen+len(part) > maxLen && len(current) > 0 {
			clauses = append(clauses, strings.TrimSpace(strings.Join(current, " ")))
			current = []string{part}
			currentLen = len(part)
		} else {
			current = append(current, part)
			currentLen += len(part)
		}
	}
	if len(current) > 0 {
		clauses = append(clauses, strings.TrimSpace(strings.Join(current, " ")))
	}
	return clauses
}

var wordPattern = regexp.MustCompile(`\w+`)

// RetrieveContext returns the window of text that best matches the
// question's keywords, scanning in fixed strides. Questions without usable
// keywords fall back to the document head.
func RetrieveContext(text, question string, window int) string {
	if window <= 0 {
		window = defaultContextLen
	}
	if len(text) <= window {
		return text
	}

	var keywords []string
	for _, w := range wordPattern.FindAllString(question, -1) {
		if len(w) > minContextKeywordLn {
			keywords = append(keywords, strings.ToLower(w))
		}
	}
	if len(keywords) == 0 {
		return text[:window]
	}

	lower := strings.ToLower(text)
	bestIdx := 0
	bestScore := -1
	for i := 0; i < len(lower)-contextScanStride; i += contextScanStride {
		end := i + window
		if end > len(lower) {
			end = len(lower)
		}
		chunk := lower[i:end]
		score := 0
		for _, k := range keywords {
			if strings.Contains(chunk, k) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	end := bestIdx + window
	if end > len(text) {
		end = len(text)
	}
	return text[bestIdx:end]
}

// DetectLanguage guesses the dominant script of text. It is a coarse
// heuristic carried through from upload for display purposes only.
func DetectLanguage(text string) string {
	var latin, devanagari, cyrillic, arabic, cjk int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Latin, r):
			latin++
		case unicode.Is(unicode.Devanagari, r):
			devanagari++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.Is(unicode.Han, r), unicode.Is(unicode.Hiragana, r), unicode.Is(unicode.Katakana, r):
			cjk++
		}
	}
	total := latin + devanagari + cyrillic + arabic + cjk
	if total == 0 {
		return "unknown"
	}
	threshold := latin * 3 / 10
	switch {
	case devanagari > threshold:
		return "hindi"
	case cyrillic > threshold:
		return "russian"
	case arabic > threshold:
		return "arabic"
	case cjk > threshold:
		return "chinese"
	default:
		return "english"
	}
}
