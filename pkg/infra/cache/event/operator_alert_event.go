package event

import "time"

type OperatorAlertEvent struct {
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Recipients int       `json:"recipients"`
	CreatedAt  time.Time `json:"created_at"`
}

func (e OperatorAlertEvent) Type() string {
	return OperatorAlertEventType
}
