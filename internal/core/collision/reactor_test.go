package collision

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/racetrack/internal/core/models"
)

const testCar models.EntityID = 1

type recordingEffects struct {
	mu          sync.Mutex
	destroyed   []Label
	succeeded   int
	checkpoints []models.EntityID
}

func (e *recordingEffects) CarDestroyed(_ models.EntityID, cause Label) {
	e.mu.Lock()
	e.destroyed = append(e.destroyed, cause)
	e.mu.Unlock()
}

func (e *recordingEffects) CarSucceeded(models.EntityID) {
	e.mu.Lock()
	e.succeeded++
	e.mu.Unlock()
}

func (e *recordingEffects) CheckpointReached(_ models.EntityID, cp models.EntityID) {
	e.mu.Lock()
	e.checkpoints = append(e.checkpoints, cp)
	e.mu.Unlock()
}

func hit(tag string) Event {
	return NewEvent(testCar, models.NewEntity(100, tag))
}

func TestReactorScenarios(t *testing.T) {
	cases := []struct {
		tag  string
		want []string
	}{
		{"Rail", []string{"RAIL"}},
		{"TrackStart", []string{"START"}},
		{"TrackFinish", []string{"FINISH"}},
		{"Checkpoint", []string{}},
		{"Obstacle", []string{}},
		{"", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			sink := NewRecordingSink()
			r := NewReactor(testCar, WithSink(sink))

			r.OnCollisionBegin(hit(tc.tag))

			assert.Equal(t, tc.want, sink.Messages())
		})
	}
}

func TestReactorNilOtherBodyIsIgnored(t *testing.T) {
	sink := NewRecordingSink()
	effects := &recordingEffects{}
	r := NewReactor(testCar, WithSink(sink), WithEffects(effects))

	r.OnCollisionBegin(Event{Car: testCar})

	assert.Empty(t, sink.Messages())
	assert.Empty(t, effects.destroyed)
	assert.Equal(t, OutcomeNone, r.Outcome(Event{Car: testCar}))
}

func TestReactorEffectHooks(t *testing.T) {
	sink := NewRecordingSink()
	effects := &recordingEffects{}
	r := NewReactor(testCar, WithSink(sink), WithEffects(effects))

	r.OnCollisionBegin(hit("Rail"))
	r.OnCollisionBegin(hit("TrackStart"))
	r.OnCollisionBegin(hit("TrackFinish"))
	r.OnCollisionBegin(hit("Checkpoint"))
	r.OnCollisionBegin(hit("Obstacle"))

	assert.Equal(t, []Label{LabelRail, LabelTrackStart}, effects.destroyed)
	assert.Equal(t, 1, effects.succeeded)
	assert.Empty(t, effects.checkpoints)

	for _, d := range sink.Entries() {
		assert.Equal(t, testCar, d.Car)
	}
}

func TestReactorCheckpointsOptIn(t *testing.T) {
	sink := NewRecordingSink()
	effects := &recordingEffects{}
	r := NewReactor(testCar, WithSink(sink), WithEffects(effects), WithCheckpoints())

	r.OnCollisionBegin(NewEvent(testCar, models.NewEntity(55, "Checkpoint")))

	assert.Equal(t, []string{"Checkpoint"}, sink.Messages())
	assert.Equal(t, []models.EntityID{55}, effects.checkpoints)
	assert.True(t, r.Registered(LabelCheckpoint))
}

func TestReactorSequenceConcatenatesDiagnostics(t *testing.T) {
	sink := NewRecordingSink()
	r := NewReactor(testCar, WithSink(sink))

	tags := []string{"Rail", "Obstacle", "TrackFinish", "Checkpoint", "TrackStart", "Rail"}
	for _, tag := range tags {
		r.OnCollisionBegin(hit(tag))
	}

	assert.Equal(t, []string{"RAIL", "FINISH", "START", "RAIL"}, sink.Messages())
}

func TestReactorConcurrentDelivery(t *testing.T) {
	sink := NewRecordingSink()
	r := NewReactor(testCar, WithSink(sink))

	tags := []string{"Rail", "TrackStart", "TrackFinish", "Obstacle"}
	const rounds = 100

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		for _, tag := range tags {
			wg.Add(1)
			go func(tag string) {
				defer wg.Done()
				r.OnCollisionBegin(hit(tag))
			}(tag)
		}
	}
	wg.Wait()

	got := sink.Messages()
	require.Len(t, got, rounds*3)
	counts := map[string]int{}
	for _, m := range got {
		counts[m]++
	}
	assert.Equal(t, map[string]int{"RAIL": rounds, "START": rounds, "FINISH": rounds}, counts)
}

func TestReactorRegister(t *testing.T) {
	sink := NewRecordingSink()
	r := NewReactor(testCar, WithSink(sink))

	assert.ErrorIs(t, r.Register(LabelUnknown, RailHandler), ErrUnknownLabel)
	assert.ErrorIs(t, r.Register(LabelRail, nil), ErrNilHandler)

	require.NoError(t, r.Register(LabelRail, func(c Contact) { c.Emit("BONK") }))
	r.OnCollisionBegin(hit("Rail"))

	r.Unregister(LabelTrackFinish)
	r.OnCollisionBegin(hit("TrackFinish"))

	assert.Equal(t, []string{"BONK"}, sink.Messages())
	assert.False(t, r.Registered(LabelTrackFinish))
	assert.Equal(t, OutcomeNone, r.Outcome(hit("TrackFinish")))
	assert.Equal(t, OutcomeRail, r.Outcome(hit("Rail")))
}

func TestReactorWithHandlerOption(t *testing.T) {
	var seen []Label
	r := NewReactor(testCar, WithHandler(LabelCheckpoint, func(c Contact) {
		seen = append(seen, c.Label)
	}), WithHandler(LabelUnknown, func(Contact) {
		t.Fatal("unknown labels must never dispatch")
	}))

	r.OnCollisionBegin(hit("Checkpoint"))
	r.OnCollisionBegin(hit("Obstacle"))

	assert.Equal(t, []Label{LabelCheckpoint}, seen)
}

func TestMultiSink(t *testing.T) {
	a, b := NewRecordingSink(), NewRecordingSink()
	r := NewReactor(testCar, WithSink(MultiSink{a, b}))

	r.OnCollisionBegin(hit("TrackFinish"))

	assert.Equal(t, []string{"FINISH"}, a.Messages())
	assert.Equal(t, []string{"FINISH"}, b.Messages())

	a.Reset()
	assert.Empty(t, a.Messages())
}

func TestDefaultHandlersAreIndependentCopies(t *testing.T) {
	h := DefaultHandlers()
	delete(h, LabelRail)

	keys := make([]int, 0)
	for l := range DefaultHandlers() {
		keys = append(keys, int(l))
	}
	sort.Ints(keys)
	assert.Equal(t, []int{int(LabelRail), int(LabelTrackStart), int(LabelTrackFinish)}, keys)
}
