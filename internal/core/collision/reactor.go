package collision

import (
	"errors"
	"sync"

	"github.com/zeusync/racetrack/internal/core/models"
)

var (
	ErrUnknownLabel = errors.New("cannot register handler for unknown label")
	ErrNilHandler   = errors.New("nil collision handler")
)

// Contact is what a Handler sees for one delivered event.
type Contact struct {
	Car     models.EntityID
	Label   Label
	Event   Event
	Sink    DiagnosticSink
	Effects Effects
}

// Emit sends msg to the reactor's sink, tagged with the car.
func (c Contact) Emit(msg string) {
	c.Sink.Emit(c.Car, msg)
}

// Handler reacts to contacts with one label.
type Handler func(c Contact)

// Reactor classifies the contacts of a single car and dispatches each one to the
// handler registered for the other body's label. It keeps no state between
// events and is safe for concurrent use.
type Reactor struct {
	car     models.EntityID
	sink    DiagnosticSink
	effects Effects

	mu       sync.RWMutex
	handlers map[Label]Handler
}

type Option func(*Reactor)

func WithSink(s DiagnosticSink) Option {
	return func(r *Reactor) {
		if s != nil {
			r.sink = s
		}
	}
}

func WithEffects(e Effects) Option {
	return func(r *Reactor) {
		if e != nil {
			r.effects = e
		}
	}
}

// WithCheckpoints enables the checkpoint handler, which is off by default.
func WithCheckpoints() Option {
	return func(r *Reactor) {
		r.handlers[LabelCheckpoint] = CheckpointHandler
	}
}

// WithHandler overrides the handler for a known label. Unknown labels and nil
// handlers are ignored.
func WithHandler(l Label, h Handler) Option {
	return func(r *Reactor) {
		_ = r.Register(l, h)
	}
}

// NewReactor creates the reactor for car. Without options diagnostics are
// discarded and effects are no-ops.
func NewReactor(car models.EntityID, opts ...Option) *Reactor {
	r := &Reactor{
		car:      car,
		sink:     DiagnosticSinkFunc(func(models.EntityID, string) {}),
		effects:  NopEffects{},
		handlers: DefaultHandlers(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultHandlers returns the built-in registrations: rail, start and finish.
func DefaultHandlers() map[Label]Handler {
	return map[Label]Handler{
		LabelRail:        RailHandler,
		LabelTrackStart:  TrackStartHandler,
		LabelTrackFinish: TrackFinishHandler,
	}
}

func (r *Reactor) Car() models.EntityID { return r.car }

// OnCollisionBegin reacts to the start of a contact. Unknown or unregistered
// labels are ignored.
func (r *Reactor) OnCollisionBegin(ev Event) {
	label := Classify(ev)
	h, ok := r.handler(label)
	if !ok {
		return
	}
	h(Contact{
		Car:     r.car,
		Label:   label,
		Event:   ev,
		Sink:    r.sink,
		Effects: r.effects,
	})
}

// Outcome reports what OnCollisionBegin would do for ev without doing it.
func (r *Reactor) Outcome(ev Event) Outcome {
	label := Classify(ev)
	if _, ok := r.handler(label); !ok {
		return OutcomeNone
	}
	return OutcomeFor(label)
}

// Register installs h for l, replacing any existing handler.
func (r *Reactor) Register(l Label, h Handler) error {
	if !l.Known() {
		return ErrUnknownLabel
	}
	if h == nil {
		return ErrNilHandler
	}
	r.mu.Lock()
	r.handlers[l] = h
	r.mu.Unlock()
	return nil
}

func (r *Reactor) Unregister(l Label) {
	r.mu.Lock()
	delete(r.handlers, l)
	r.mu.Unlock()
}

// Registered reports whether a handler is installed for l.
func (r *Reactor) Registered(l Label) bool {
	_, ok := r.handler(l)
	return ok
}

func (r *Reactor) handler(l Label) (Handler, bool) {
	switch l {
	case LabelRail, LabelTrackStart, LabelTrackFinish, LabelCheckpoint:
		r.mu.RLock()
		h, ok := r.handlers[l]
		r.mu.RUnlock()
		return h, ok
	case LabelUnknown:
		return nil, false
	default:
		return nil, false
	}
}
