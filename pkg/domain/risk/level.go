package risk

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Level is the ordered severity of a user message. Comparisons use the ordinal value.
type Level int

const (
	None Level = iota
	Low
	Medium
	High
	Critical
)

var levelNames = [...]string{"NONE", "LOW", "MEDIUM", "HIGH", "CRITICAL"}

func (l Level) String() string {
	if l < None || l > Critical {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// AtLeast reports whether l is as severe as other or more.
func (l Level) AtLeast(other Level) bool {
	return l >= other
}

func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return None, fmt.Errorf("unknown risk level: %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l Level) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *Level) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = None
		return nil
	case string:
		return l.UnmarshalText([]byte(v))
	case []byte:
		return l.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into risk.Level", value)
	}
}
