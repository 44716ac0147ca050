package providers

import (
	"strconv"
	"strings"
)

const (
	MetadataPromptTokens     = "prompt_tokens"
	MetadataCompletionTokens = "completion_tokens"
	MetadataTotalTokens      = "total_tokens"
	MetadataResponseID       = "response_id"
	MetadataFallbackFrom     = "fallback_from"
)

type Response struct {
	Content  string            `json:"content"`
	Provider string            `json:"provider"`
	Model    string            `json:"model"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// NewResponse trims the generated text and rejects blank content.
func NewResponse(provider, model, content, id string, usage Usage) (*Response, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyResponse
	}
	meta := map[string]string{
		MetadataPromptTokens:     strconv.Itoa(usage.PromptTokens),
		MetadataCompletionTokens: strconv.Itoa(usage.CompletionTokens),
		MetadataTotalTokens:      strconv.Itoa(usage.TotalTokens),
	}
	if id != "" {
		meta[MetadataResponseID] = id
	}
	return &Response{
		Content:  content,
		Provider: provider,
		Model:    model,
		Metadata: meta,
	}, nil
}

func (r *Response) IsBlank() bool {
	return r == nil || strings.TrimSpace(r.Content) == ""
}
