package replay

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/zeusync/racetrack/internal/core/collision"
	"github.com/zeusync/racetrack/internal/core/events/bus"
	"github.com/zeusync/racetrack/internal/core/models"
	"github.com/zeusync/racetrack/internal/core/observability/log"
	"github.com/zeusync/racetrack/pkg/concurrent"
)

const source = "replay"

type Options struct {
	// Parallel is the number of contacts in flight. 1 preserves file order.
	Parallel          int
	EnableCheckpoints bool
}

// Runner plays a scenario through the event bus into one reactor per car.
type Runner struct {
	bus    bus.EventBus
	logger log.Log
	opts   Options
}

func NewRunner(b bus.EventBus, logger log.Log, opts Options) *Runner {
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	return &Runner{bus: b, logger: logger, opts: opts}
}

// Summary reports what a replay emitted.
type Summary struct {
	Contacts    int
	Diagnostics map[string]int
	// PerCar holds each car's diagnostics in emission order.
	PerCar map[models.EntityID][]string
	Hooks  HookCounts
}

type HookCounts struct {
	Destroyed   int
	Succeeded   int
	Checkpoints int
}

// hookCounter records which effect hooks fired. It performs no state change.
type hookCounter struct {
	mu     sync.Mutex
	counts HookCounts
	logger log.Log
}

func (h *hookCounter) CarDestroyed(car models.EntityID, cause collision.Label) {
	h.mu.Lock()
	h.counts.Destroyed++
	h.mu.Unlock()
	h.logger.Debug("car destroyed hook", log.Uint64("car", uint64(car)), log.String("cause", cause.String()))
}

func (h *hookCounter) CarSucceeded(car models.EntityID) {
	h.mu.Lock()
	h.counts.Succeeded++
	h.mu.Unlock()
	h.logger.Debug("car succeeded hook", log.Uint64("car", uint64(car)))
}

func (h *hookCounter) CheckpointReached(car, checkpoint models.EntityID) {
	h.mu.Lock()
	h.counts.Checkpoints++
	h.mu.Unlock()
	h.logger.Debug("checkpoint hook", log.Uint64("car", uint64(car)), log.Uint64("checkpoint", uint64(checkpoint)))
}

func (h *hookCounter) snapshot() HookCounts {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts
}

// Run attaches a reactor per car, delivers every contact and detaches again.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Summary, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	world, err := s.World()
	if err != nil {
		return nil, err
	}

	recorder := collision.NewRecordingSink()
	sink := collision.MultiSink{recorder, collision.NewLogSink(r.logger)}
	hooks := &hookCounter{logger: r.logger}

	subs := make([]bus.Subscription, 0, len(s.Cars))
	defer func() {
		for _, sub := range subs {
			_ = r.bus.Unsubscribe(sub)
		}
	}()
	for _, car := range s.Cars {
		opts := []collision.Option{collision.WithSink(sink), collision.WithEffects(hooks)}
		if r.opts.EnableCheckpoints {
			opts = append(opts, collision.WithCheckpoints())
		}
		sub, err := collision.Attach(r.bus, collision.NewReactor(car, opts...))
		if err != nil {
			return nil, errors.Wrapf(err, "attach car %d", car)
		}
		subs = append(subs, sub)
	}

	r.logger.Info("replay started",
		log.Int("cars", len(s.Cars)),
		log.Int("bodies", world.Len()),
		log.Int("contacts", len(s.Contacts)),
		log.Int("parallel", r.opts.Parallel),
	)

	err = concurrent.ForEach(ctx, s.Contacts, r.opts.Parallel, func(ctx context.Context, c ContactSpec) error {
		var other collision.Body
		tag := ""
		if e, ok := world.Get(c.Other); ok {
			other = e
			tag = e.Tag()
		}
		r.logger.WithContext(log.ContextWithCar(ctx, uint64(c.Car))).
			Debug("contact", log.Uint64("other", uint64(c.Other)), log.String("tag", tag))
		return collision.Publish(r.bus, source, collision.NewEvent(c.Car, other))
	})
	if err != nil {
		return nil, errors.Wrap(err, "deliver contacts")
	}

	summary := &Summary{
		Contacts:    len(s.Contacts),
		Diagnostics: make(map[string]int),
		PerCar:      make(map[models.EntityID][]string),
		Hooks:       hooks.snapshot(),
	}
	for _, d := range recorder.Entries() {
		summary.Diagnostics[d.Message]++
		summary.PerCar[d.Car] = append(summary.PerCar[d.Car], d.Message)
	}
	r.logger.Info("replay finished", log.Int("diagnostics", len(recorder.Entries())))
	return summary, nil
}
