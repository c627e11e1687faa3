package events

import (
	"time"
)

// Event is a fact about a game that subscribers may react to. Every event
// names the game and the turn it belongs to; events raised before the first
// turn carry turn zero.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
	Turn() int
}

// Envelope holds the fields shared by every concrete event. It is embedded
// by value so that the event structs stay plain data.
type Envelope struct {
	Kind  string    `json:"type"`
	Stamp time.Time `json:"timestamp"`
	Game  string    `json:"game_id"`
	Round int       `json:"turn"`
}

func envelope(kind, gameID string, turn int) Envelope {
	return Envelope{Kind: kind, Stamp: time.Now(), Game: gameID, Round: turn}
}

func (e Envelope) Type() string         { return e.Kind }
func (e Envelope) Timestamp() time.Time { return e.Stamp }
func (e Envelope) GameID() string       { return e.Game }
func (e Envelope) Turn() int            { return e.Round }

// EventHandler receives events of a single type registered through SubscribeFunc
type EventHandler func(Event)

// Subscriber receives every event it declares interest in. ID must be unique
// per bus; subscribing a second time under the same ID replaces the first.
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is what producers of events depend on
type Publisher interface {
	Publish(Event)
}
