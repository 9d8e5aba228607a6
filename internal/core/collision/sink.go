package collision

import (
	"sync"

	"github.com/zeusync/racetrack/internal/core/models"
	"github.com/zeusync/racetrack/internal/core/observability/log"
)

// DiagnosticSink receives human-readable messages with no effect on game state.
type DiagnosticSink interface {
	Emit(car models.EntityID, msg string)
}

// DiagnosticSinkFunc adapts a function to DiagnosticSink.
type DiagnosticSinkFunc func(car models.EntityID, msg string)

func (f DiagnosticSinkFunc) Emit(car models.EntityID, msg string) { f(car, msg) }

// LogSink writes each diagnostic as an info entry.
type LogSink struct {
	logger log.Log
}

func NewLogSink(logger log.Log) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(car models.EntityID, msg string) {
	s.logger.Info(msg, log.Uint64("car", uint64(car)))
}

// Diagnostic is one recorded emission.
type Diagnostic struct {
	Car     models.EntityID
	Message string
}

// RecordingSink keeps every emission in memory.
type RecordingSink struct {
	mu      sync.Mutex
	entries []Diagnostic
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Emit(car models.EntityID, msg string) {
	s.mu.Lock()
	s.entries = append(s.entries, Diagnostic{Car: car, Message: msg})
	s.mu.Unlock()
}

func (s *RecordingSink) Entries() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.entries))
	copy(out, s.entries)
	return out
}

// Messages returns the recorded messages in emission order.
func (s *RecordingSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	for i, d := range s.entries {
		out[i] = d.Message
	}
	return out
}

func (s *RecordingSink) Reset() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

// MultiSink fans out to several sinks in order.
type MultiSink []DiagnosticSink

func (m MultiSink) Emit(car models.EntityID, msg string) {
	for _, s := range m {
		s.Emit(car, msg)
	}
}
