package utils

import (
	"regexp"
	"strings"
)

var quoteFolder = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02bc", "'")

// NormalizeText lowercases text and folds typographic apostrophes to ASCII so mobile
// keyboards match keywords written with "'".
func NormalizeText(text string) string {
	return quoteFolder.Replace(strings.ToLower(text))
}

// KeywordPattern returns the word-boundary source for a keyword. Boundaries are only added next
// to word characters, so "self-harm" and "can't" keep matching as written and "sad" never matches
// inside "crusade".
func KeywordPattern(keyword string) string {
	keyword = NormalizeText(strings.TrimSpace(keyword))
	if keyword == "" {
		return ""
	}
	pattern := regexp.QuoteMeta(keyword)
	if isWordByte(keyword[0]) {
		pattern = `\b` + pattern
	}
	if isWordByte(keyword[len(keyword)-1]) {
		pattern += `\b`
	}
	return pattern
}

// CompileKeywords compiles one pattern per keyword, preserving order and skipping blanks.
func CompileKeywords(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		if p := KeywordPattern(kw); p != "" {
			patterns = append(patterns, regexp.MustCompile(p))
		}
	}
	return patterns
}

// CompileAlternation compiles all keywords into a single pattern, nil when there are none.
func CompileAlternation(keywords []string) *regexp.Regexp {
	alternatives := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if p := KeywordPattern(kw); p != "" {
			alternatives = append(alternatives, p)
		}
	}
	if len(alternatives) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(alternatives, "|"))
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
