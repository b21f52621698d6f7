// Package scanner runs the per-frame interaction scan: find the first
// configured prop near the player that the player can use, show its help text
// and fire its action when the prop's control is released.
package scanner

import (
	"fmt"
	"log/slog"

	"github.com/interactiv/extension/internal/cache"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/pkg/core"
)

// DefaultRadius is how close a prop has to be to the player.
const DefaultRadius float32 = 1.5

// State is the outcome of the last scan.
type State int

const (
	// StateScanning: no usable prop in range.
	StateScanning State = iota
	// StatePresenting: a usable prop is in range and its help text is shown.
	StatePresenting
	// StateIdleAfterMatch: the prop's action was dispatched this frame.
	StateIdleAfterMatch
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "Scanning"
	case StatePresenting:
		return "Presenting"
	case StateIdleAfterMatch:
		return "IdleAfterMatch"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// World is what the scanner needs from the engine.
type World interface {
	PlayerPosition() core.Vector3
	Situation() core.Situation
	// ClosestObject returns the closest object of the model within radius of pos.
	ClosestObject(pos core.Vector3, radius float32, model uint32) (handle int, found bool)
	ControlJustReleased(c props.Control) bool
	DisplayHelpText(text string)
}

// Match is a prop whose action fired.
type Match struct {
	Definition props.Definition
	Object     int
	Position   core.Vector3
	Tick       uint64
}

// ActionDispatcher runs the action of a matched prop.
type ActionDispatcher interface {
	Execute(m Match) error
}

// Scanner is driven from the engine thread only.
type Scanner struct {
	catalog    *props.Catalog
	world      World
	dispatcher ActionDispatcher
	models     *cache.ModelCache
	radius     float32
	logger     *slog.Logger

	state   State
	current string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithRadius overrides DefaultRadius. Non-positive values are ignored.
func WithRadius(r float32) Option {
	return func(s *Scanner) {
		if r > 0 {
			s.radius = r
		}
	}
}

// WithModelCache shares a model hash cache with other components.
func WithModelCache(c *cache.ModelCache) Option {
	return func(s *Scanner) { s.models = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New creates a Scanner over catalog.
func New(catalog *props.Catalog, world World, dispatcher ActionDispatcher, opts ...Option) *Scanner {
	s := &Scanner{
		catalog:    catalog,
		world:      world,
		dispatcher: dispatcher,
		radius:     DefaultRadius,
		logger:     slog.Default(),
		state:      StateScanning,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.models == nil {
		s.models = cache.NewModelCache()
	}
	return s
}

// State returns the state after the last Tick.
func (s *Scanner) State() State { return s.state }

// Current returns the model name of the prop presented by the last Tick, or "".
func (s *Scanner) Current() string { return s.current }

// Radius returns the search radius.
func (s *Scanner) Radius() float32 { return s.radius }

// Tick runs one scan. Props are tried in catalog order; props that are not in
// range or not usable in the player's situation are passed over, and the
// first usable one ends the scan.
func (s *Scanner) Tick(tick uint64) State {
	s.state, s.current = StateScanning, ""

	defs := s.catalog.All()
	if len(defs) == 0 {
		return s.state
	}

	pos := s.world.PlayerPosition()
	var situation core.Situation
	situationRead := false

	for _, def := range defs {
		obj, found := s.world.ClosestObject(pos, s.radius, s.models.Hash(def.ModelName()))
		if !found {
			continue
		}

		if !situationRead {
			situation = s.world.Situation()
			situationRead = true
		}
		if !def.Accessible(situation) {
			continue
		}

		s.current = def.ModelName()
		if text := def.HelpText(); text != "" {
			s.world.DisplayHelpText(text)
		}

		if !s.world.ControlJustReleased(def.Control()) {
			s.state = StatePresenting
			return s.state
		}

		s.state = StateIdleAfterMatch
		m := Match{Definition: def, Object: obj, Position: pos, Tick: tick}
		if err := s.dispatcher.Execute(m); err != nil {
			s.logger.Error("Failed to dispatch prop action",
				"model", def.ModelName(), "action", def.Action().String(), "error", err)
		}
		return s.state
	}

	return s.state
}
