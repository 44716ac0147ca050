package crisis

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	DefaultLanguage = "en"
	GlobalRegion    = "GLOBAL"
)

type Resource struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	TextLine    string         `json:"text_line,omitempty"`
	URL         string         `json:"url,omitempty"`
	Language    string         `json:"language"`
	Region      string         `json:"region"`
	Topics      pq.StringArray `json:"topics,omitempty" gorm:"type:text[]"`
	Priority    int            `json:"-"`
	CreatedAt   time.Time      `json:"-"`
}

func (r Resource) TableName() string {
	return "crisis_resources"
}

// DefaultResources is the last-resort list shown when the catalog cannot be read.
func DefaultResources() []Resource {
	return []Resource{
		{
			Name:        "Emergency services",
			Description: "If you are in immediate danger, call your local emergency number.",
			Language:    DefaultLanguage,
			Region:      GlobalRegion,
		},
		{
			Name:        "Find a Helpline",
			Description: "Free, confidential support from a crisis line in your country.",
			URL:         "https://findahelpline.com",
			Language:    DefaultLanguage,
			Region:      GlobalRegion,
		},
	}
}
