package moderation

import (
	"fmt"
	"strings"
)

// Action is the outcome of reviewing an AI response before it is shown.
// Severity follows declaration order.
type Action int

const (
	None Action = iota
	Flagged
	Modified
	Blocked
)

var actionNames = [...]string{"NONE", "FLAGGED", "MODIFIED", "BLOCKED"}

func (a Action) String() string {
	if a < None || a > Blocked {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

func ParseAction(s string) (Action, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return None, fmt.Errorf("unknown moderation action: %q", s)
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
