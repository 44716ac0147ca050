package guardrail

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/domain/moderation"
	"github.com/NeuralTrust/SafeChat/pkg/domain/risk"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Guardrail --dir=. --output=./mocks --filename=guardrail_mock.go --case=underscore --with-expecter
type Guardrail interface {
	Check(response string, level risk.Level) Result
}

type guardrail struct {
	logger *logrus.Logger

	prohibited *regexp.Regexp
	diagnosis  *regexp.Regexp
	sensitive  *regexp.Regexp
	dismissive *regexp.Regexp

	maxLength        int
	redactionMarker  string
	fallbackMessage  string
	safetyPrompt     string
	empatheticPrefix string
}

func NewGuardrail(logger *logrus.Logger, cfg config.SafetyConfig) Guardrail {
	return &guardrail{
		logger:           logger,
		prohibited:       compilePhrases(cfg.ProhibitedPhrases),
		diagnosis:        compilePhrases(cfg.DiagnosisPhrases),
		sensitive:        compilePhrases(cfg.SensitivePhrases),
		dismissive:       compilePhrases(cfg.DismissivePhrases),
		maxLength:        cfg.MaxResponseLength,
		redactionMarker:  cfg.RedactionMarker,
		fallbackMessage:  cfg.FallbackMessage,
		safetyPrompt:     cfg.SafetyPrompt,
		empatheticPrefix: cfg.EmpatheticPrefix,
	}
}

func (g *guardrail) Check(response string, level risk.Level) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.WithField("panic", r).Error("guardrail check panicked, blocking response")
			result = newResult(moderation.Blocked, ReasonInternalError, g.fallbackMessage)
		}
	}()

	if strings.TrimSpace(response) == "" {
		return newResult(moderation.Blocked, ReasonEmptyResponse, g.fallbackMessage)
	}

	if matches(g.prohibited, response) {
		return newResult(moderation.Blocked, ReasonProhibitedContent, g.fallbackMessage)
	}

	if matches(g.diagnosis, response) {
		return newResult(moderation.Flagged, ReasonDiagnosisAttempt, response)
	}

	if matches(g.sensitive, response) {
		if level.AtLeast(risk.High) {
			redacted := g.sensitive.ReplaceAllLiteralString(response, g.redactionMarker)
			return newResult(moderation.Modified, ReasonSensitiveContent, redacted+"\n\n"+g.safetyPrompt)
		}
		return newResult(moderation.Flagged, ReasonSensitiveContent, response)
	}

	if g.maxLength > 0 && utf8.RuneCountInString(response) > g.maxLength {
		return newResult(moderation.Flagged, ReasonResponseTooLong, response)
	}

	if level.AtLeast(risk.High) && matches(g.dismissive, response) {
		return newResult(moderation.Modified, ReasonDismissiveLanguage, g.empatheticPrefix+" "+response)
	}

	return Result{Action: moderation.None, FinalResponse: response}
}

func matches(re *regexp.Regexp, text string) bool {
	return re != nil && re.MatchString(text)
}

// compilePhrases builds one case-insensitive alternation, longest phrase first so
// replacements cover overlapping entries completely.
func compilePhrases(phrases []string) *regexp.Regexp {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p != "" {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}
