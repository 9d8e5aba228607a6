package collision

import (
	"github.com/zeusync/racetrack/internal/core/events/bus"
)

// Attach subscribes r to collision-begin events on b. Events addressed to other
// cars and payloads that are not an Event are skipped.
func Attach(b bus.EventBus, r *Reactor) (bus.Subscription, error) {
	return b.Subscribe(EventCollisionBegin, func(e bus.Event) error {
		ev, ok := payload(e)
		if !ok || ev.Car != r.Car() {
			return nil
		}
		r.OnCollisionBegin(ev)
		return nil
	})
}

// Publish delivers ev to every reactor attached to b.
func Publish(b bus.EventBus, source string, ev Event) error {
	return b.Publish(bus.NewEvent(EventCollisionBegin, source, ev))
}

func payload(e bus.Event) (Event, bool) {
	switch v := e.Data().(type) {
	case Event:
		return v, true
	case *Event:
		if v == nil {
			return Event{}, false
		}
		return *v, true
	default:
		return Event{}, false
	}
}
