package request

import "fmt"

type UpdateToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r *UpdateToggleRequest) Validate() error {
	if r.Enabled == nil {
		return fmt.Errorf("enabled is required")
	}
	return nil
}
