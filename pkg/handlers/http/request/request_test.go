package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendMessageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request SendMessageRequest
		wantErr bool
	}{
		{name: "valid", request: SendMessageRequest{Message: " hi "}},
		{name: "blank", request: SendMessageRequest{Message: "   "}, wantErr: true},
		{name: "too long", request: SendMessageRequest{Message: strings.Repeat("a", MaxMessageLength+1)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "hi", tt.request.Message)
		})
	}
}

func TestUpdatePreferencesRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request UpdatePreferencesRequest
		wantErr bool
	}{
		{name: "provider only", request: UpdatePreferencesRequest{PreferredProvider: "Anthropic"}},
		{name: "locale", request: UpdatePreferencesRequest{Language: "ES", Region: "mx"}},
		{name: "global region", request: UpdatePreferencesRequest{Region: "global"}},
		{name: "empty", request: UpdatePreferencesRequest{}, wantErr: true},
		{name: "bad language", request: UpdatePreferencesRequest{Language: "spanish"}, wantErr: true},
		{name: "bad region", request: UpdatePreferencesRequest{Region: "MEX"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdatePreferencesRequest_Normalizes(t *testing.T) {
	r := UpdatePreferencesRequest{PreferredProvider: " OpenAI ", Language: "ES", Region: "mx"}

	assert.NoError(t, r.Validate())
	prefs := r.ToPreferences()
	assert.Equal(t, "openai", prefs.PreferredProvider)
	assert.Equal(t, "es", prefs.Language)
	assert.Equal(t, "MX", prefs.Region)
}

func TestUpdateToggleRequest_Validate(t *testing.T) {
	enabled := false
	assert.NoError(t, (&UpdateToggleRequest{Enabled: &enabled}).Validate())
	assert.Error(t, (&UpdateToggleRequest{}).Validate())
}

func TestCreateResourceRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateResourceRequest{Name: "988", Phone: "988"}).Validate())
	assert.Error(t, (&CreateResourceRequest{Phone: "988"}).Validate())
	assert.Error(t, (&CreateResourceRequest{Name: "x", URL: "javascript:alert(1)"}).Validate())
	assert.Error(t, (&CreateResourceRequest{Name: "x", Priority: -1}).Validate())
}
