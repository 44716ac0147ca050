package crisis

import (
	"regexp"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/utils"
)

type keyword struct {
	word    string
	pattern *regexp.Regexp
}

// KeywordDetector finds the first configured crisis keyword present in a message.
// Negations are not considered: "I don't want to kill myself" still matches.
type KeywordDetector struct {
	keywords []keyword
}

func NewKeywordDetector(words []string) *KeywordDetector {
	d := &KeywordDetector{}
	for _, w := range words {
		w = utils.NormalizeText(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		d.keywords = append(d.keywords, keyword{word: w, pattern: regexp.MustCompile(utils.KeywordPattern(w))})
	}
	return d
}

// Detect returns the first keyword, in configured order, that appears in text.
func (d *KeywordDetector) Detect(text string) (string, bool) {
	normalized := utils.NormalizeText(text)
	for _, kw := range d.keywords {
		if kw.pattern.MatchString(normalized) {
			return kw.word, true
		}
	}
	return "", false
}
