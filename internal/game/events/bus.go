package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus delivers each published event synchronously to every interested
// subscriber, in the order they subscribed. A subscriber that panics is
// logged and skipped; delivery to the rest continues.
type EventBus struct {
	mu     sync.Mutex
	subs   []Subscriber
	nextFn int
	logger zerolog.Logger
}

// funcSubscriber adapts an EventHandler registered for a single event type
type funcSubscriber struct {
	id        string
	eventType string
	fn        EventHandler
}

func (f *funcSubscriber) ID() string                 { return f.id }
func (f *funcSubscriber) HandleEvent(e Event)        { f.fn(e) }
func (f *funcSubscriber) InterestedIn(t string) bool { return t == f.eventType }

// NewEventBus logs through the global zerolog logger
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{logger: logger.With().Str("component", "event_bus").Logger()}
}

// Subscribe adds s at the end of the delivery order. A subscriber whose ID is
// already present takes over that position instead.
func (eb *EventBus) Subscribe(s Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if i := eb.indexOf(s.ID()); i >= 0 {
		eb.subs[i] = s
	} else {
		eb.subs = append(eb.subs, s)
	}
	eb.logger.Debug().Str("subscriber_id", s.ID()).Msg("Subscriber added to event bus")
}

// Unsubscribe removes the subscriber or function handler with the given ID
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if i := eb.indexOf(id); i >= 0 {
		eb.subs = append(eb.subs[:i], eb.subs[i+1:]...)
		eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber removed from event bus")
	}
}

// SubscribeFunc registers fn for one event type and returns an ID that can be
// passed to Unsubscribe.
func (eb *EventBus) SubscribeFunc(eventType string, fn EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextFn++
	id := fmt.Sprintf("%s_func_%d", eventType, eb.nextFn)
	eb.subs = append(eb.subs, &funcSubscriber{id: id, eventType: eventType, fn: fn})
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Function handler added to event bus")
	return id
}

// Publish hands event to every interested subscriber before returning.
// Subscribers may subscribe or unsubscribe while handling an event; the
// change applies from the next Publish.
func (eb *EventBus) Publish(event Event) {
	eb.mu.Lock()
	targets := make([]Subscriber, 0, len(eb.subs))
	for _, s := range eb.subs {
		if s.InterestedIn(event.Type()) {
			targets = append(targets, s)
		}
	}
	eb.mu.Unlock()

	eb.logger.Debug().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Int("turn", event.Turn()).
		Int("receivers", len(targets)).
		Msg("Publishing event")

	for _, s := range targets {
		eb.deliver(s, event)
	}
}

func (eb *EventBus) deliver(s Subscriber, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("subscriber_id", s.ID()).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Subscriber panicked while handling event")
		}
	}()
	s.HandleEvent(event)
}

// SubscriberCount counts subscribers added with Subscribe
func (eb *EventBus) SubscriberCount() int {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	n := 0
	for _, s := range eb.subs {
		if _, ok := s.(*funcSubscriber); !ok {
			n++
		}
	}
	return n
}

// HandlerCount counts function handlers registered for eventType
func (eb *EventBus) HandlerCount(eventType string) int {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	n := 0
	for _, s := range eb.subs {
		if f, ok := s.(*funcSubscriber); ok && f.eventType == eventType {
			n++
		}
	}
	return n
}

func (eb *EventBus) indexOf(id string) int {
	for i, s := range eb.subs {
		if s.ID() == id {
			return i
		}
	}
	return -1
}
