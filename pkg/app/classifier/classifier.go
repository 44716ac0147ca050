package classifier

import (
	"regexp"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/domain/conversation"
	"github.com/NeuralTrust/SafeChat/pkg/domain/risk"
	"github.com/NeuralTrust/SafeChat/pkg/utils"
)

//go:generate mockery --name=Classifier --dir=. --output=./mocks --filename=classifier_mock.go --case=underscore --with-expecter
type Classifier interface {
	Classify(text string, recent []conversation.Message) risk.Level
}

type tier struct {
	level    risk.Level
	patterns []*regexp.Regexp
}

type classifier struct {
	tiers          []tier
	negation       *regexp.Regexp
	negationWindow int
	historyWindow  int
}

// NewClassifier compiles the keyword tables once; the returned Classifier holds no mutable state.
func NewClassifier(cfg config.SafetyConfig) Classifier {
	return &classifier{
		tiers: []tier{
			{level: risk.Critical, patterns: utils.CompileKeywords(cfg.CriticalKeywords)},
			{level: risk.High, patterns: utils.CompileKeywords(cfg.HighKeywords)},
			{level: risk.Medium, patterns: utils.CompileKeywords(cfg.MediumKeywords)},
			{level: risk.Low, patterns: utils.CompileKeywords(cfg.LowKeywords)},
		},
		negation:       utils.CompileAlternation(cfg.NegationMarkers),
		negationWindow: cfg.NegationWindow,
		historyWindow:  cfg.HistoryWindow,
	}
}

func (c *classifier) Classify(text string, recent []conversation.Message) risk.Level {
	normalized := utils.NormalizeText(text)
	if strings.TrimSpace(normalized) == "" {
		return risk.None
	}

	for _, t := range c.tiers {
		for _, pattern := range t.patterns {
			if c.hasQualifyingMatch(normalized, pattern) {
				return t.level
			}
		}
	}

	return c.escalate(recent)
}

func (c *classifier) hasQualifyingMatch(text string, pattern *regexp.Regexp) bool {
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if !c.isNegated(text, loc[0]) {
			return true
		}
	}
	return false
}

// isNegated looks for a negation marker in the window of bytes preceding start. The cut can
// land inside a word, so a truncated "cannot" still reads as "not".
func (c *classifier) isNegated(text string, start int) bool {
	if c.negation == nil {
		return false
	}
	from := start - c.negationWindow
	if from < 0 {
		from = 0
	}
	return c.negation.MatchString(text[from:start])
}

func (c *classifier) escalate(recent []conversation.Message) risk.Level {
	var mediumOrAbove, low, seen int
	for i := len(recent) - 1; i >= 0 && seen < c.historyWindow; i-- {
		msg := recent[i]
		if !msg.IsFromUser {
			continue
		}
		seen++
		switch {
		case msg.RiskLevel.AtLeast(risk.Medium):
			mediumOrAbove++
		case msg.RiskLevel == risk.Low:
			low++
		}
	}

	switch {
	case mediumOrAbove >= 2:
		return risk.High
	case mediumOrAbove >= 1 && low >= 2:
		return risk.Medium
	case low >= 3:
		return risk.Low
	default:
		return risk.None
	}
}
