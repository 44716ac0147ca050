package event

type ToggleUpdatedEvent struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func (e ToggleUpdatedEvent) Type() string {
	return ToggleUpdatedEventType
}
