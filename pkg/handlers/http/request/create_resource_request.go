package request

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
)

type CreateResourceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	TextLine    string   `json:"text_line,omitempty"`
	URL         string   `json:"url,omitempty"`
	Language    string   `json:"language"`
	Region      string   `json:"region"`
	Topics      []string `json:"topics,omitempty"`
	Priority    int      `json:"priority"`
}

func (r *CreateResourceRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if r.URL != "" {
		u, err := url.Parse(r.URL)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return fmt.Errorf("url must be an absolute http(s) url")
		}
	}
	if r.Priority < 0 {
		return fmt.Errorf("priority must be non-negative")
	}
	return nil
}

func (r *CreateResourceRequest) ToResource() *crisis.Resource {
	return &crisis.Resource{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Phone:       r.Phone,
		TextLine:    r.TextLine,
		URL:         r.URL,
		Language:    r.Language,
		Region:      r.Region,
		Topics:      r.Topics,
		Priority:    r.Priority,
	}
}
