// Package actions runs the action of a prop the player used.
//
// Every action tag has a buffered dispatcher command, :ACTION:<TAG>:, so the
// engine thread only queues the interaction; recording it happens on the
// dispatcher's worker.
package actions

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/interactiv/extension/internal/cache"
	"github.com/interactiv/extension/internal/dispatcher"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/internal/scanner"
	"github.com/interactiv/extension/pkg/core"
)

// DefaultBufferSize is the queue length of each action command.
const DefaultBufferSize = 64

// Recorder stores interactions. storage.Backend satisfies it.
type Recorder interface {
	RecordInteraction(i *core.Interaction) error
}

// Command returns the dispatcher command of an action tag.
func Command(tag props.ActionTag) string {
	return ":ACTION:" + strings.ToUpper(tag.String()) + ":"
}

// Dependencies holds what the action handlers need.
type Dependencies struct {
	Dispatcher *dispatcher.Dispatcher
	Recorder   Recorder
	SessionID  func() string // stamped on recorded interactions
	Logger     *slog.Logger
	BufferSize int
}

// Service registers the action commands and implements scanner.ActionDispatcher.
type Service struct {
	deps       Dependencies
	dispatched cache.SafeCounter
	recorded   cache.SafeCounter
	now        func() time.Time
}

// New creates the action service. Call Register before the first Execute.
func New(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.SessionID == nil {
		deps.SessionID = func() string { return "" }
	}
	if deps.BufferSize <= 0 {
		deps.BufferSize = DefaultBufferSize
	}
	return &Service{deps: deps, now: time.Now}
}

// Register adds one buffered command per action tag.
func (s *Service) Register() {
	for _, tag := range props.ActionTags {
		s.deps.Dispatcher.Register(Command(tag), s.handle(tag), dispatcher.Buffered(s.deps.BufferSize), dispatcher.Logged())
	}
}

// Execute queues the matched prop's action.
func (s *Service) Execute(m scanner.Match) error {
	d := m.Definition
	i := &core.Interaction{
		SessionID:  s.deps.SessionID(),
		Time:       s.now(),
		Tick:       m.Tick,
		ModelName:  d.ModelName(),
		Action:     d.Action().String(),
		Control:    uint16(d.Control()),
		Position:   m.Position,
		Offsets:    d.Offsets(),
		Accessible: uint32(d.Accessibility()),
	}

	if _, err := s.deps.Dispatcher.Dispatch(dispatcher.Event{
		Command:   Command(d.Action()),
		Payload:   i,
		Timestamp: i.Time,
	}); err != nil {
		return fmt.Errorf("dispatching %s: %w", d.Action(), err)
	}
	s.dispatched.Inc()
	return nil
}

// Dispatched returns how many actions were queued.
func (s *Service) Dispatched() uint64 {
	return s.dispatched.Value()
}

// Recorded returns how many interactions reached the recorder.
func (s *Service) Recorded() uint64 {
	return s.recorded.Value()
}

func (s *Service) handle(tag props.ActionTag) dispatcher.HandlerFunc {
	return func(e dispatcher.Event) (any, error) {
		i, ok := e.Payload.(*core.Interaction)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected payload %T", e.Command, e.Payload)
		}

		// Actions do not change game state yet, they are only journaled.
		s.deps.Logger.Info("Prop action",
			"action", tag.String(),
			"model", i.ModelName,
			"position", i.Position.String(),
			"tick", i.Tick,
		)

		if s.deps.Recorder == nil {
			return nil, nil
		}
		if err := s.deps.Recorder.RecordInteraction(i); err != nil {
			return nil, fmt.Errorf("recording %s interaction: %w", tag, err)
		}
		s.recorded.Inc()
		return nil, nil
	}
}
