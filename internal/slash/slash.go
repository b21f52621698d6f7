// Package slash lets the player on foot burst the tyres of the closest vehicle.
package slash

import (
	"log/slog"
	"time"

	"github.com/interactiv/extension/internal/cache"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/pkg/core"
)

// DefaultRadius is how close a vehicle has to be to be slashed.
const DefaultRadius float32 = 2.0

// Wheel is a wheel bone of a vehicle and the tyre index it carries.
type Wheel struct {
	Tyre     int
	Position core.Vector3
}

// WheelBones maps wheel bone names to tyre indices.
var WheelBones = []struct {
	Bone string
	Tyre int
}{
	{"wheel_lf", 0},
	{"wheel_rf", 1},
	{"wheel_lm1", 2},
	{"wheel_rm1", 3},
	{"wheel_lr", 4},
	{"wheel_rr", 5},
}

// ClosestTyre returns the tyre of the wheel closest to pos, or 0 without wheels.
func ClosestTyre(wheels []Wheel, pos core.Vector3) int {
	tyre, best := 0, float32(-1)
	for _, w := range wheels {
		d := w.Position.DistanceTo(pos)
		if best < 0 || d < best {
			tyre, best = w.Tyre, d
		}
	}
	return tyre
}

// World is what the slasher needs from the engine.
type World interface {
	PlayerPosition() core.Vector3
	Situation() core.Situation
	ClosestVehicle(pos core.Vector3, radius float32) (vehicle int, found bool)
	TyresCanBurst(vehicle int) bool
	// Wheels returns the wheels the vehicle has, skipping missing bones.
	Wheels(vehicle int) []Wheel
	BurstTyre(vehicle, tyre int)
	VehicleModelName(vehicle int) string
	ControlJustReleased(c props.Control) bool
}

// Reporter is told about every burst tyre.
type Reporter interface {
	ReportTyreSlash(t *core.TyreSlash) error
}

// Config holds the slasher settings.
type Config struct {
	Enabled bool
	Radius  float32
	Control props.Control
}

// DefaultConfig slashes within DefaultRadius on the context control.
func DefaultConfig() Config {
	return Config{Enabled: true, Radius: DefaultRadius, Control: props.ControlContext}
}

// Slasher runs on the engine thread.
type Slasher struct {
	world    World
	cfg      Config
	reporter Reporter
	logger   *slog.Logger
	slashed  cache.SafeCounter
	now      func() time.Time
}

// New creates a Slasher. reporter may be nil.
func New(world World, cfg Config, reporter Reporter, logger *slog.Logger) *Slasher {
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultRadius
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Slasher{
		world:    world,
		cfg:      cfg,
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Slashed returns how many tyres were burst.
func (s *Slasher) Slashed() uint64 {
	return s.slashed.Value()
}

// Tick bursts a tyre when the player releases the slash control next to a
// vehicle. It reports whether a tyre was burst.
func (s *Slasher) Tick(tick uint64) bool {
	if !s.cfg.Enabled {
		return false
	}
	if !s.world.Situation().OnFoot() {
		return false
	}

	pos := s.world.PlayerPosition()
	vehicle, found := s.world.ClosestVehicle(pos, s.cfg.Radius)
	if !found || !s.world.TyresCanBurst(vehicle) {
		return false
	}
	if !s.world.ControlJustReleased(s.cfg.Control) {
		return false
	}

	tyre := ClosestTyre(s.world.Wheels(vehicle), pos)
	s.world.BurstTyre(vehicle, tyre)
	s.slashed.Inc()

	if s.reporter != nil {
		err := s.reporter.ReportTyreSlash(&core.TyreSlash{
			Time:         s.now(),
			Tick:         tick,
			VehicleModel: s.world.VehicleModelName(vehicle),
			Tyre:         tyre,
			Position:     pos,
		})
		if err != nil {
			s.logger.Error("Failed to report tyre slash", "tyre", tyre, "error", err)
		}
	}
	return true
}
