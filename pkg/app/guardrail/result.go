package guardrail

import "github.com/NeuralTrust/SafeChat/pkg/domain/moderation"

const (
	ReasonEmptyResponse      = "empty_response"
	ReasonProhibitedContent  = "prohibited_content"
	ReasonDiagnosisAttempt   = "diagnosis_attempt"
	ReasonSensitiveContent   = "sensitive_content"
	ReasonResponseTooLong    = "response_too_long"
	ReasonDismissiveLanguage = "dismissive_language"
	ReasonInternalError      = "internal_error"
)

type Result struct {
	Action        moderation.Action
	Reason        *string
	FinalResponse string
}

func newResult(action moderation.Action, reason string, text string) Result {
	r := reason
	return Result{Action: action, Reason: &r, FinalResponse: text}
}

// ReasonOrEmpty returns the reason, or "" when the response passed untouched.
func (r Result) ReasonOrEmpty() string {
	if r.Reason == nil {
		return ""
	}
	return *r.Reason
}
