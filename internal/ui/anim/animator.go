// Package anim turns engine events into frame-based tweens so moves are shown
// one unit after another instead of all at once.
package anim

import (
	"sync"

	"github.com/mitchelldurbincs/GraphChase/internal/common"
	"github.com/mitchelldurbincs/GraphChase/internal/config"
	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/events"
)

// Config controls animation timing in frames
type Config struct {
	MoveFrames    int
	StaggerFrames int
}

// FromConfig builds animation timing from the ui.animation settings
func FromConfig(c config.AnimationConfig) Config {
	return Config{MoveFrames: c.MoveFrames, StaggerFrames: c.StaggerFrames}
}

type tween struct {
	from, to core.Coordinate
	start    int
}

// Ghost is a captured unit that is still fading out
type Ghost struct {
	Unit  core.UnitID
	Role  core.Role
	At    core.Coordinate
	Alpha float64
}

type ghost struct {
	unit  core.UnitID
	role  core.Role
	at    core.Coordinate
	start int
}

// Animator is an events.Subscriber. Moves published during one turn are
// started StaggerFrames apart in publish order; a capture starts fading once
// the capturing move has landed.
type Animator struct {
	mu     sync.Mutex
	cfg    Config
	frame  int
	slot   int
	moves  map[core.UnitID]*tween
	ghosts []*ghost
}

// New creates an idle animator
func New(cfg Config) *Animator {
	if cfg.MoveFrames < 1 {
		cfg.MoveFrames = 1
	}
	if cfg.StaggerFrames < 0 {
		cfg.StaggerFrames = 0
	}
	return &Animator{
		cfg:   cfg,
		moves: make(map[core.UnitID]*tween),
	}
}

func (a *Animator) ID() string { return "ui-animator" }

func (a *Animator) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeGameStarted, events.TypeTurnStarted, events.TypeUnitMoved, events.TypeUnitKilled:
		return true
	}
	return false
}

func (a *Animator) HandleEvent(event events.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch e := event.(type) {
	case *events.GameStartedEvent:
		a.moves = make(map[core.UnitID]*tween)
		a.ghosts = nil
		a.slot = 0

	case *events.TurnStartedEvent:
		a.slot = 0

	case *events.UnitMovedEvent:
		a.moves[e.UnitID] = &tween{
			from:  e.From,
			to:    e.To,
			start: a.frame + a.slot*a.cfg.StaggerFrames,
		}
		a.slot++

	case *events.UnitKilledEvent:
		start := a.frame
		if t, ok := a.moves[e.KilledBy]; ok {
			start = t.start + a.cfg.MoveFrames
		}
		delete(a.moves, e.UnitID)
		a.ghosts = append(a.ghosts, &ghost{unit: e.UnitID, role: e.Role, at: e.At, start: start})
	}
}

// Update advances one frame and drops finished animations
func (a *Animator) Update() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.frame++
	for id, t := range a.moves {
		if a.frame >= t.start+a.cfg.MoveFrames {
			delete(a.moves, id)
		}
	}
	kept := a.ghosts[:0]
	for _, g := range a.ghosts {
		if a.frame < g.start+a.cfg.MoveFrames {
			kept = append(kept, g)
		}
	}
	a.ghosts = kept
}

// Busy reports whether any move or fade is still playing
func (a *Animator) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.moves) > 0 || len(a.ghosts) > 0
}

// Position returns the animated lattice position of unit. ok is false when
// the unit is not animating and should be drawn at its board vertex.
func (a *Animator) Position(unit core.UnitID) (x, y float64, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, found := a.moves[unit]
	if !found {
		return 0, 0, false
	}
	p := common.EaseInOut(a.progress(t.start))
	x = common.Lerp(float64(t.from.X), float64(t.to.X), p)
	y = common.Lerp(float64(t.from.Y), float64(t.to.Y), p)
	return x, y, true
}

// Ghosts returns the captured units still on screen
func (a *Animator) Ghosts() []Ghost {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Ghost, 0, len(a.ghosts))
	for _, g := range a.ghosts {
		out = append(out, Ghost{
			Unit:  g.unit,
			Role:  g.role,
			At:    g.at,
			Alpha: 1 - a.progress(g.start),
		})
	}
	return out
}

func (a *Animator) progress(start int) float64 {
	return common.Clamp(float64(a.frame-start)/float64(a.cfg.MoveFrames), 0, 1)
}
