package cache

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
)

// Envelope is the pub/sub wire format. Type selects the concrete event from the registry.
type Envelope struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

//go:generate mockery --name=EventPublisher --dir=. --output=./mocks --filename=event_publisher_mock.go --case=underscore --with-expecter
type EventPublisher interface {
	Publish(ctx context.Context, ch channel.Channel, ev event.Event) error
}

// EventListener fans events received on redis channels out to the subscribers registered per event type.
type EventListener interface {
	Listen(ctx context.Context, channels ...channel.Channel)
	Register(eventType reflect.Type, subscriber interface{})
}

type EventSubscriber[T event.Event] interface {
	OnEvent(ctx context.Context, ev T) error
}
