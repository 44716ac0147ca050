package providers

import (
	"fmt"

	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

// ParseChatCompletion reads an OpenAI-compatible chat completion body. The model
// reported by the server wins over the configured one.
func ParseChatCompletion(provider, model string, body []byte) (*Response, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if m := v.GetStringBytes("model"); len(m) > 0 {
		model = string(m)
	}
	return NewResponse(
		provider,
		model,
		string(v.GetStringBytes("choices", "0", "message", "content")),
		string(v.GetStringBytes("id")),
		Usage{
			PromptTokens:     v.GetInt("usage", "prompt_tokens"),
			CompletionTokens: v.GetInt("usage", "completion_tokens"),
			TotalTokens:      v.GetInt("usage", "total_tokens"),
		},
	)
}
