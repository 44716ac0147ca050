package providers

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turns flattens history plus the new message into alternating chat turns, oldest first.
// Blank history entries are dropped.
func Turns(req Request) []Turn {
	turns := make([]Turn, 0, len(req.History)+1)
	for _, msg := range req.History {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		role := RoleAssistant
		if msg.IsFromUser {
			role = RoleUser
		}
		turns = append(turns, Turn{Role: role, Content: msg.Content})
	}
	return append(turns, Turn{Role: RoleUser, Content: req.Message})
}

// SystemPrompt appends the user's locale hints to the configured prompt.
func SystemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(req.SystemPrompt)
	if hints := contextHints(req.Context); hints != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(hints)
	}
	return b.String()
}

func contextHints(c user.Context) string {
	var hints []string
	if c.Language != "" && c.Language != crisis.DefaultLanguage {
		hints = append(hints, fmt.Sprintf("- Reply in the user's language (%s).", c.Language))
	}
	if c.Region != "" && c.Region != crisis.GlobalRegion {
		hints = append(hints, fmt.Sprintf("- The user is located in region %s.", c.Region))
	}
	if len(hints) == 0 {
		return ""
	}
	return "[Context]\n" + strings.Join(hints, "\n")
}
