package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}

// EventRecorder collects published events in order. It satisfies both
// events.Subscriber and the processor's EventPublisher.
type EventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *EventRecorder) ID() string                 { return "event-recorder" }
func (r *EventRecorder) InterestedIn(string) bool   { return true }
func (r *EventRecorder) HandleEvent(e events.Event) { r.record(e) }
func (r *EventRecorder) Publish(e events.Event)     { r.record(e) }

func (r *EventRecorder) record(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []string {
	var out []string
	for _, e := range r.Events() {
		out = append(out, e.Type())
	}
	return out
}

// Reset drops all recorded events
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
