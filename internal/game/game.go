// Package game is the plugin's view of the engine. Every call goes through a
// native.Invoker and must happen on the engine's script thread.
package game

import (
	"log/slog"

	"github.com/interactiv/extension/internal/cache"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/internal/scheduler"
	"github.com/interactiv/extension/internal/slash"
	"github.com/interactiv/extension/pkg/core"
	"github.com/interactiv/extension/pkg/native"
)

// Controls are read from the player's pad.
const padIndex = 0

// Game wraps the natives the plugin uses.
type Game struct {
	inv       native.Invoker
	scheduler *scheduler.Scheduler
	models    *cache.ModelCache
	logger    *slog.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithModelCache shares a model hash cache.
func WithModelCache(c *cache.ModelCache) Option {
	return func(g *Game) {
		g.models = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New creates a Game. sched runs the helpers that span several frames.
func New(inv native.Invoker, sched *scheduler.Scheduler, opts ...Option) *Game {
	g := &Game{
		inv:       inv,
		scheduler: sched,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.models == nil {
		g.models = cache.NewModelCache()
	}
	return g
}

// PlayerPed returns the player's ped handle.
func (g *Game) PlayerPed() int {
	return g.inv.Invoke(native.PlayerPedID).Int()
}

// EntityPosition returns the world position of an entity.
func (g *Game) EntityPosition(entity int) core.Vector3 {
	return g.inv.Invoke(native.GetEntityCoords, native.Int(entity), native.Bool(true)).Vector()
}

// EntityExists reports whether the handle refers to a live entity.
func (g *Game) EntityExists(entity int) bool {
	if entity == 0 {
		return false
	}
	return g.inv.Invoke(native.DoesEntityExist, native.Int(entity)).Bool()
}

// PlayerPosition returns the player's position.
func (g *Game) PlayerPosition() core.Vector3 {
	return g.EntityPosition(g.PlayerPed())
}

// Situation reads where the player is: on foot or in which kind of vehicle.
func (g *Game) Situation() core.Situation {
	ped := g.PlayerPed()

	var s core.Situation
	if !g.inv.Invoke(native.IsPedInAnyVehicle, native.Int(ped), native.Bool(false)).Bool() {
		return s
	}
	s.InVehicle = true
	s.Taxi = g.inv.Invoke(native.IsPedInAnyTaxi, native.Int(ped)).Bool()

	vehicle := g.inv.Invoke(native.GetVehiclePedIsIn, native.Int(ped), native.Bool(false)).Int()
	model := native.Uint(g.inv.Invoke(native.GetEntityModel, native.Int(vehicle)).Uint())

	s.Car = g.inv.Invoke(native.IsThisModelACar, model).Bool()
	s.Boat = g.inv.Invoke(native.IsThisModelABoat, model).Bool()
	s.Plane = g.inv.Invoke(native.IsThisModelAPlane, model).Bool()
	s.Helicopter = g.inv.Invoke(native.IsThisModelAHeli, model).Bool()
	s.Bike = g.inv.Invoke(native.IsThisModelABike, model).Bool()
	s.Bicycle = g.inv.Invoke(native.IsThisModelABicycle, model).Bool()
	return s
}

// ClosestObject returns the closest object of the model within radius of pos.
func (g *Game) ClosestObject(pos core.Vector3, radius float32, model uint32) (int, bool) {
	obj := g.inv.Invoke(native.GetClosestObjectOfType,
		native.Float(pos.X), native.Float(pos.Y), native.Float(pos.Z),
		native.Float(radius), native.Uint(model),
		native.Bool(false), native.Bool(false), native.Bool(false),
	).Int()
	return obj, g.EntityExists(obj)
}

// ClosestObjectNamed is ClosestObject for a model name.
func (g *Game) ClosestObjectNamed(pos core.Vector3, radius float32, modelName string) (int, bool) {
	return g.ClosestObject(pos, radius, g.models.Hash(modelName))
}

// ClosestVehicle returns the closest vehicle within radius of pos.
func (g *Game) ClosestVehicle(pos core.Vector3, radius float32) (int, bool) {
	vehicle := g.inv.Invoke(native.GetClosestVehicle,
		native.Float(pos.X), native.Float(pos.Y), native.Float(pos.Z),
		native.Float(radius), native.Uint(0), native.Int(70),
	).Int()
	return vehicle, g.EntityExists(vehicle)
}

// ControlJustReleased reports whether c was released this frame.
func (g *Game) ControlJustReleased(c props.Control) bool {
	return g.inv.Invoke(native.IsControlJustReleased, native.Int(padIndex), native.Int(int(c))).Bool()
}

// DisplayHelpText is DisplayHelpTextThisFrame.
func (g *Game) DisplayHelpText(text string) {
	g.DisplayHelpTextThisFrame(text)
}

// Wheels returns the wheel bones the vehicle has.
func (g *Game) Wheels(vehicle int) []slash.Wheel {
	wheels := make([]slash.Wheel, 0, len(slash.WheelBones))
	for _, wb := range slash.WheelBones {
		bone := g.inv.Invoke(native.GetEntityBoneIndex, native.Int(vehicle), native.String(wb.Bone)).Int()
		if bone == -1 {
			continue
		}
		pos := g.inv.Invoke(native.GetWorldPositionOfBone, native.Int(vehicle), native.Int(bone)).Vector()
		wheels = append(wheels, slash.Wheel{Tyre: wb.Tyre, Position: pos})
	}
	return wheels
}

// TyresCanBurst reports whether the vehicle's tyres can be burst.
func (g *Game) TyresCanBurst(vehicle int) bool {
	return g.inv.Invoke(native.GetVehicleTyresCanBurst, native.Int(vehicle)).Bool()
}

// BurstTyre bursts one tyre, leaving the wheel on its rim.
func (g *Game) BurstTyre(vehicle, tyre int) {
	g.inv.Invoke(native.SetVehicleTyreBurst, native.Int(vehicle), native.Int(tyre), native.Bool(true), native.Float(1000))
}
