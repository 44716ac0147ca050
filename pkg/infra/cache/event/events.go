package event

import "reflect"

type Event interface {
	Type() string
}

var (
	ToggleUpdatedEventType    = "ToggleUpdatedEvent"
	ResourcesUpdatedEventType = "ResourcesUpdatedEvent"
	UserUpdatedEventType      = "UserUpdatedEvent"
	OperatorAlertEventType    = "OperatorAlertEvent"
)

var Registry = map[string]reflect.Type{
	ToggleUpdatedEventType:    reflect.TypeOf(ToggleUpdatedEvent{}),
	ResourcesUpdatedEventType: reflect.TypeOf(ResourcesUpdatedEvent{}),
	UserUpdatedEventType:      reflect.TypeOf(UserUpdatedEvent{}),
	OperatorAlertEventType:    reflect.TypeOf(OperatorAlertEvent{}),
}
