package event

type ResourcesUpdatedEvent struct {
	Language string `json:"language"`
	Region   string `json:"region"`
}

func (e ResourcesUpdatedEvent) Type() string {
	return ResourcesUpdatedEventType
}
