package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/interactiv/extension/internal/actions"
	"github.com/interactiv/extension/internal/cache"
	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/internal/dispatcher"
	"github.com/interactiv/extension/internal/monitor"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/internal/scanner"
	"github.com/interactiv/extension/internal/scheduler"
	"github.com/interactiv/extension/internal/session"
	"github.com/interactiv/extension/internal/slash"
	"github.com/interactiv/extension/internal/storage"
	"github.com/interactiv/extension/internal/util"
	"github.com/interactiv/extension/pkg/core"
)

// Commands registered by the service.
const (
	CmdTick        = ":TICK:"
	CmdKeyDown     = ":KEYDOWN:"
	CmdKeyUp       = ":KEYUP:"
	CmdVersion     = ":VERSION:"
	CmdReload      = ":RELOAD:"
	CmdStatus      = ":STATUS:"
	CmdTyreSlashed = ":TYRE:SLASHED:"

	CmdSessionUpdate = ":SESSION:UPDATE:"
)

// ErrWrongPayload is returned by handlers given an event they cannot use.
var ErrWrongPayload = errors.New("unexpected event payload")

// World is everything the per-tick components need from the engine.
// game.Game satisfies it.
type World interface {
	scanner.World
	slash.World
	CurrentCharacterName(full bool) string
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Dispatcher *dispatcher.Dispatcher
	World      World
	Scheduler  *scheduler.Scheduler
	Catalog    *props.Catalog
	Session    *session.Context
	Actions    *actions.Service
	Backend    storage.Backend // optional
	Models     *cache.ModelCache
	Logger     *slog.Logger

	PropsPath string
	Scan      config.ScanConfig
	Slash     config.SlashConfig

	ExtensionVersion string
	BuildDate        string
}

// Service owns the per-tick state of the plugin: the props catalog, the
// interaction scanner, the tyre slasher and the task scheduler.
type Service struct {
	deps    Dependencies
	logger  *slog.Logger
	scanner *scanner.Scanner
	slasher *slash.Slasher

	ticks    cache.SafeCounter
	lastTick cache.SafeCounter // nanoseconds
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Models == nil {
		deps.Models = cache.NewModelCache()
	}
	if deps.Catalog == nil {
		deps.Catalog = props.NewCatalog(nil)
	}
	if deps.Scheduler == nil {
		deps.Scheduler = scheduler.New(deps.Logger)
	}

	s := &Service{deps: deps, logger: deps.Logger}

	s.scanner = scanner.New(deps.Catalog, deps.World, deps.Actions,
		scanner.WithRadius(deps.Scan.Radius),
		scanner.WithModelCache(deps.Models),
		scanner.WithLogger(deps.Logger),
	)

	cfg := slash.DefaultConfig()
	cfg.Enabled = deps.Slash.Enabled
	if deps.Slash.Radius > 0 {
		cfg.Radius = deps.Slash.Radius
	}
	if deps.Slash.Control != "" {
		c, err := props.ParseControl(deps.Slash.Control)
		if err != nil {
			deps.Logger.Warn("Invalid slash control, using default", "control", deps.Slash.Control, "error", err)
		} else {
			cfg.Control = c
		}
	}
	s.slasher = slash.New(deps.World, cfg, s, deps.Logger)

	return s
}

// Scanner returns the interaction scanner.
func (s *Service) Scanner() *scanner.Scanner { return s.scanner }

// Slasher returns the tyre slasher.
func (s *Service) Slasher() *slash.Slasher { return s.slasher }

// Register adds the lifecycle and tick commands to the dispatcher.
func (s *Service) Register() {
	d := s.deps.Dispatcher

	d.Register(CmdTick, func(e dispatcher.Event) (any, error) {
		s.Tick(e.Timestamp)
		return nil, nil
	})

	d.Register(CmdKeyDown, func(e dispatcher.Event) (any, error) {
		s.logger.Debug("Key down", "key", firstArg(e))
		return nil, nil
	}, dispatcher.Logged())

	d.Register(CmdKeyUp, func(e dispatcher.Event) (any, error) {
		s.logger.Debug("Key up", "key", firstArg(e))
		return nil, nil
	}, dispatcher.Logged())

	d.Register(CmdVersion, func(e dispatcher.Event) (any, error) {
		return []string{s.deps.ExtensionVersion, s.deps.BuildDate}, nil
	})

	d.Register(CmdReload, func(e dispatcher.Event) (any, error) {
		path := s.deps.PropsPath
		if arg := firstArg(e); arg != "" {
			path = arg
		}
		n := s.Reload(path)
		s.syncSession()
		return n, nil
	}, dispatcher.Logged())

	d.Register(CmdStatus, func(e dispatcher.Event) (any, error) {
		return s.Status(), nil
	})

	d.Register(CmdTyreSlashed, s.recordTyreSlash, dispatcher.Buffered(actions.DefaultBufferSize), dispatcher.Logged())
	d.Register(CmdSessionUpdate, s.updateSession, dispatcher.Buffered(8))
}

// Tick runs one frame: scan for props, check for a tyre slash and poll the
// scheduled tasks.
func (s *Service) Tick(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	start := time.Now()
	tick := s.ticks.Inc()

	s.trackCharacter()
	s.scanner.Tick(tick)
	s.slasher.Tick(tick)
	s.deps.Scheduler.Tick(now)

	s.lastTick.Set(uint64(time.Since(start)))
}

func (s *Service) trackCharacter() {
	if s.deps.Session == nil {
		return
	}
	name := s.deps.World.CurrentCharacterName(false)
	if name != s.deps.Session.Get().Character {
		s.deps.Session.SetCharacter(name)
		s.logger.Info("Character changed", "character", name)
		s.syncSession()
	}
}

// syncSession queues the current session metadata for the journal.
func (s *Service) syncSession() {
	if s.deps.Session == nil || s.deps.Backend == nil {
		return
	}
	if _, err := s.deps.Dispatcher.Dispatch(dispatcher.Event{
		Command: CmdSessionUpdate,
		Payload: s.deps.Session.Get(),
	}); err != nil {
		s.logger.Warn("Failed to queue session update", "error", err)
	}
}

func (s *Service) updateSession(e dispatcher.Event) (any, error) {
	sess, ok := e.Payload.(core.Session)
	if !ok {
		return nil, ErrWrongPayload
	}
	if s.deps.Backend == nil {
		return nil, nil
	}
	return nil, s.deps.Backend.UpdateSession(&sess)
}

// Reload re-reads the props file at path and swaps the catalog. It returns
// how many props were loaded.
func (s *Service) Reload(path string) int {
	defs := props.Load(path, s.logger)
	s.deps.Catalog.Replace(defs)
	s.deps.Models.Reset()
	if s.deps.Session != nil {
		s.deps.Session.SetProps(path, len(defs))
	}
	return len(defs)
}

// Ticks returns how many frames ran.
func (s *Service) Ticks() uint64 {
	return s.ticks.Value()
}

// LastTick returns how long the last frame took.
func (s *Service) LastTick() time.Duration {
	return time.Duration(s.lastTick.Value())
}

// Status returns a snapshot for :STATUS: and the monitor.
func (s *Service) Status() monitor.Status {
	st := monitor.Status{
		Time:         time.Now(),
		Ticks:        s.Ticks(),
		PropsLoaded:  s.deps.Catalog.Len(),
		LastTick:     s.LastTick(),
		TyresSlashed: s.slasher.Slashed(),
		PendingTasks: s.deps.Scheduler.Len(),
	}
	if s.deps.Session != nil {
		st.SessionID = s.deps.Session.ID()
	}
	if s.deps.Actions != nil {
		st.ActionsDispatched = s.deps.Actions.Dispatched()
	}
	if p, ok := s.deps.Backend.(storage.Pender); ok {
		st.PendingWrites = p.Pending()
	}
	return st
}

// ReportTyreSlash queues the slash for the journal.
func (s *Service) ReportTyreSlash(t *core.TyreSlash) error {
	if s.deps.Session != nil {
		t.SessionID = s.deps.Session.ID()
	}
	_, err := s.deps.Dispatcher.Dispatch(dispatcher.Event{
		Command:   CmdTyreSlashed,
		Payload:   t,
		Timestamp: t.Time,
	})
	return err
}

func (s *Service) recordTyreSlash(e dispatcher.Event) (any, error) {
	t, ok := e.Payload.(*core.TyreSlash)
	if !ok {
		return nil, ErrWrongPayload
	}
	s.logger.Info("Tyre slashed", "vehicle", t.VehicleModel, "tyre", t.Tyre)
	if s.deps.Backend == nil {
		return nil, nil
	}
	return nil, s.deps.Backend.RecordTyreSlash(t)
}

func firstArg(e dispatcher.Event) string {
	if len(e.Args) == 0 {
		return ""
	}
	return util.TrimQuotes(e.Args[0])
}
