package event

type UserUpdatedEvent struct {
	UserID string `json:"user_id"`
}

func (e UserUpdatedEvent) Type() string {
	return UserUpdatedEventType
}
