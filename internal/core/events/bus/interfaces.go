package bus

import "time"

// EventBus is the in-process channel through which the host engine delivers
// physics notifications to gameplay components.
//
// Delivery is synchronous: Publish calls every matching handler on the caller
// goroutine and joins handler errors. Handlers should return quickly.
// All methods are safe for concurrent use.
type EventBus interface {
	// Publish delivers the event to all active subscribers of event.Type().
	Publish(event Event) error
	// PublishWithFilters drops the event silently if any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error
	// PublishBatch publishes events in order and joins their errors.
	PublishBatch(events ...Event) error
	// PublishAsync publishes on a new goroutine. The returned channel yields the
	// delivery error (or nil) and is then closed.
	PublishAsync(event Event) <-chan error

	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the subscription. A nil subscription is a no-op.
	Unsubscribe(Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics returns counters. They only move while an observer is registered.
	GetMetrics() EventBusMetrics
}

// Event is an immutable message. Type is the routing key.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified around each delivery.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, durationMicros int64)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
	SubscribersActive uint64
}
