package crisis

import (
	"testing"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestKeywordDetector_Detect(t *testing.T) {
	d := NewKeywordDetector(config.DefaultCrisisKeywords)

	tests := []struct {
		text    string
		keyword string
		found   bool
	}{
		{text: "I want to kill myself", keyword: "kill myself", found: true},
		{text: "Sometimes I think suicide is the only way", keyword: "suicide", found: true},
		{text: "I do not want to kill myself", keyword: "kill myself", found: true},
		{text: "I'm thinking about SELF-HARM again", keyword: "self-harm", found: true},
		{text: "We read about suicides in history class", found: false},
		{text: "Just a normal day", found: false},
		{text: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			kw, found := d.Detect(tt.text)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.keyword, kw)
		})
	}
}

func TestKeywordDetector_TypographicApostrophe(t *testing.T) {
	d := NewKeywordDetector([]string{"can't go on"})

	kw, found := d.Detect("I really can\u2019t go on anymore")

	assert.True(t, found)
	assert.Equal(t, "can't go on", kw)
}

func TestKeywordDetector_FirstConfiguredWins(t *testing.T) {
	d := NewKeywordDetector([]string{"end it all", " ", "want to die"})

	kw, found := d.Detect("I want to die, I want to end it all")

	assert.True(t, found)
	assert.Equal(t, "end it all", kw)
}
