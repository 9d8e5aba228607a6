package collision

import (
	"time"

	"github.com/zeusync/racetrack/internal/core/models"
)

// EventCollisionBegin is the bus event type carrying an Event payload.
const EventCollisionBegin = "collision.begin"

// Body is the other participant of a contact. Only its tag is read.
type Body interface {
	ID() models.EntityID
	Tag() string
}

// Event notifies that Car has begun touching Other. Contact geometry is not
// carried; nothing downstream consults it.
type Event struct {
	Car   models.EntityID
	Other Body
	At    time.Time
}

// NewEvent builds an event stamped with the current time.
func NewEvent(car models.EntityID, other Body) Event {
	return Event{Car: car, Other: other, At: time.Now()}
}

// OtherTag returns the other body's tag, or "" when there is no body.
func (e Event) OtherTag() string {
	if e.Other == nil {
		return ""
	}
	return e.Other.Tag()
}

// Classify returns the label of the other participant.
func Classify(e Event) Label {
	return ParseLabel(e.OtherTag())
}
