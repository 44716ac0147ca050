package request

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
)

type UpdatePreferencesRequest struct {
	PreferredProvider string `json:"preferred_provider"`
	Language          string `json:"language"`
	Region            string `json:"region"`
}

func (r *UpdatePreferencesRequest) Validate() error {
	r.PreferredProvider = strings.ToLower(strings.TrimSpace(r.PreferredProvider))
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	r.Region = strings.ToUpper(strings.TrimSpace(r.Region))

	if r.PreferredProvider == "" && r.Language == "" && r.Region == "" {
		return fmt.Errorf("at least one preference must be set")
	}
	if r.Language != "" && (len(r.Language) < 2 || len(r.Language) > 3) {
		return fmt.Errorf("language must be an ISO 639 code")
	}
	if r.Region != "" && len(r.Region) != 2 && r.Region != "GLOBAL" {
		return fmt.Errorf("region must be an ISO 3166 alpha-2 code or GLOBAL")
	}
	return nil
}

func (r *UpdatePreferencesRequest) ToPreferences() user.Preferences {
	return user.Preferences{
		PreferredProvider: r.PreferredProvider,
		Language:          r.Language,
		Region:            r.Region,
	}
}
