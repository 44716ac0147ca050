package config

const DefaultSystemPrompt = "You are a compassionate mental-health support companion. " +
	"You listen, validate feelings and encourage professional help when appropriate. " +
	"You never diagnose conditions and never provide information that could be used for self-harm."

// SafetyConfig holds the classifier keyword tables and the guardrail phrase lists.
type SafetyConfig struct {
	CriticalKeywords   []string `mapstructure:"critical_keywords"`
	HighKeywords       []string `mapstructure:"high_keywords"`
	MediumKeywords     []string `mapstructure:"medium_keywords"`
	LowKeywords        []string `mapstructure:"low_keywords"`
	NegationMarkers    []string `mapstructure:"negation_markers"`
	NegationWindow     int      `mapstructure:"negation_window"`
	HistoryWindow      int      `mapstructure:"history_window"`
	ProhibitedPhrases  []string `mapstructure:"prohibited_phrases"`
	DiagnosisPhrases   []string `mapstructure:"diagnosis_phrases"`
	SensitivePhrases   []string `mapstructure:"sensitive_phrases"`
	DismissivePhrases  []string `mapstructure:"dismissive_phrases"`
	MaxResponseLength  int      `mapstructure:"max_response_length"`
	RedactionMarker    string   `mapstructure:"redaction_marker"`
	FallbackMessage    string   `mapstructure:"fallback_message"`
	SafetyPrompt       string   `mapstructure:"safety_prompt"`
	EmpatheticPrefix   string   `mapstructure:"empathetic_prefix"`
	ProviderErrorReply string   `mapstructure:"provider_error_reply"`
}

var (
	DefaultCriticalKeywords = []string{
		"kill myself", "end my life", "take my own life", "going to kill myself", "suicide plan",
		"plan to die", "hang myself", "overdose tonight", "jump off a bridge", "goodbye forever",
	}
	DefaultHighKeywords = []string{
		"want to die", "end it all", "suicidal", "no reason to live", "better off dead",
		"don't want to be alive", "wish i was dead", "can't go on", "thinking about suicide",
	}
	DefaultMediumKeywords = []string{
		"hurt myself", "self harm", "self-harm", "cutting myself", "hopeless", "worthless",
		"can't cope", "hate myself", "panic attack", "empty inside",
	}
	DefaultLowKeywords = []string{
		"sad", "anxious", "stressed", "lonely", "depressed", "upset", "worried", "overwhelmed", "down",
	}
	DefaultNegationMarkers = []string{
		"not", "never", "no", "don't", "dont", "won't", "wont", "wouldn't", "didn't", "doesn't", "isn't",
	}

	DefaultProhibitedPhrases = []string{
		"you should kill", "you should hurt", "suicide is the answer", "you deserve to die",
		"nobody would miss you", "you should end your life", "here's how to kill",
	}
	DefaultDiagnosisPhrases = []string{
		"you have depression", "you have anxiety", "you have bipolar", "you have ptsd",
		"you have a disorder", "diagnosed with", "your diagnosis is", "you are suffering from",
	}
	DefaultSensitivePhrases = []string{
		"kill yourself", "suicide method", "lethal dose", "how to overdose", "ways to die",
	}
	DefaultDismissivePhrases = []string{
		"just think positive", "you're overreacting", "get over it", "it's not that bad",
		"just cheer up", "others have it worse", "stop being dramatic", "snap out of it",
	}

	DefaultCrisisKeywords = []string{
		"kill myself", "suicide", "end my life", "want to die", "end it all", "better off dead",
		"no reason to live", "hurt myself", "self harm", "self-harm",
	}
)

const (
	DefaultFallbackMessage = "I want to support you, but I'm not able to respond to that right now. " +
		"If you're in crisis or thinking about harming yourself, please reach out to a crisis helpline " +
		"or your local emergency services right away. You don't have to go through this alone."
	DefaultSafetyPrompt = "If you are having thoughts of harming yourself, please contact a crisis helpline " +
		"or emergency services right now. You are not alone, and help is available."
	DefaultEmpatheticPrefix   = "I hear you, and what you're feeling is real and it matters."
	DefaultProviderErrorReply = "I'm sorry, I'm having trouble responding right now. Please try again in a moment. " +
		"If you need immediate support, please reach out to a crisis helpline."
)

func (s SafetyConfig) withDefaults() SafetyConfig {
	if len(s.CriticalKeywords) == 0 {
		s.CriticalKeywords = DefaultCriticalKeywords
	}
	if len(s.HighKeywords) == 0 {
		s.HighKeywords = DefaultHighKeywords
	}
	if len(s.MediumKeywords) == 0 {
		s.MediumKeywords = DefaultMediumKeywords
	}
	if len(s.LowKeywords) == 0 {
		s.LowKeywords = DefaultLowKeywords
	}
	if len(s.NegationMarkers) == 0 {
		s.NegationMarkers = DefaultNegationMarkers
	}
	if s.NegationWindow == 0 {
		s.NegationWindow = 20
	}
	if s.HistoryWindow == 0 {
		s.HistoryWindow = 5
	}
	if len(s.ProhibitedPhrases) == 0 {
		s.ProhibitedPhrases = DefaultProhibitedPhrases
	}
	if len(s.DiagnosisPhrases) == 0 {
		s.DiagnosisPhrases = DefaultDiagnosisPhrases
	}
	if len(s.SensitivePhrases) == 0 {
		s.SensitivePhrases = DefaultSensitivePhrases
	}
	if len(s.DismissivePhrases) == 0 {
		s.DismissivePhrases = DefaultDismissivePhrases
	}
	if s.MaxResponseLength == 0 {
		s.MaxResponseLength = 2000
	}
	if s.RedactionMarker == "" {
		s.RedactionMarker = "[removed]"
	}
	if s.FallbackMessage == "" {
		s.FallbackMessage = DefaultFallbackMessage
	}
	if s.SafetyPrompt == "" {
		s.SafetyPrompt = DefaultSafetyPrompt
	}
	if s.EmpatheticPrefix == "" {
		s.EmpatheticPrefix = DefaultEmpatheticPrefix
	}
	if s.ProviderErrorReply == "" {
		s.ProviderErrorReply = DefaultProviderErrorReply
	}
	return s
}

// DefaultSafety returns the safety tables with every default applied.
func DefaultSafety() SafetyConfig {
	return SafetyConfig{}.withDefaults()
}
