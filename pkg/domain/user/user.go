package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	ProviderAuto = "auto"
)

type User struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	PreferredProvider string    `json:"preferred_provider"`
	Language          string    `json:"language"`
	Region            string    `json:"region"`
	Profile           Profile   `json:"profile" gorm:"type:jsonb"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (u User) TableName() string {
	return "users"
}

// Profile holds the free-form onboarding answers of a user.
type Profile map[string]string

func (p Profile) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *Profile) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into user.Profile", value)
	}
	return json.Unmarshal(b, p)
}

// HasFields reports whether every named field is present and non-empty.
func (p Profile) HasFields(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if p[f] == "" {
			return false
		}
	}
	return true
}
