package game

import (
	"github.com/interactiv/extension/internal/slash"
	"github.com/interactiv/extension/pkg/core"
	"github.com/interactiv/extension/pkg/native"
)

const (
	vehicleModCount = 50
	modFrontWheels  = 23
	modBackWheels   = 24 // bikes only
	neonLightCount  = 4
	firstExtra      = 1
	lastExtra       = 14
)

// roof states as returned by GET_CONVERTIBLE_ROOF_STATE
const (
	roofRaised = iota
	roofLowering
	roofLowered
	roofRaising
)

// toggle mods (turbo, tyre smoke, xenon lights...) are on/off rather than indexed
func isToggleMod(i int) bool {
	return i >= 17 && i <= 22
}

// ModelDisplayName translates a vehicle model hash into its display name.
// Variations of a model may share a name.
func (g *Game) ModelDisplayName(model uint32) string {
	ptr := g.inv.Invoke(native.GetDisplayNameFromVehicleModel, native.Uint(model)).Word()
	return g.inv.ReadString(ptr)
}

// VehicleModelName returns the display name of a vehicle's model.
func (g *Game) VehicleModelName(vehicle int) string {
	return g.ModelDisplayName(g.inv.Invoke(native.GetEntityModel, native.Int(vehicle)).Uint())
}

// ClosestTyre returns the tyre of the vehicle closest to the player.
func (g *Game) ClosestTyre(vehicle int) int {
	return slash.ClosestTyre(g.Wheels(vehicle), g.PlayerPosition())
}

func (g *Game) out2(h native.Hash, vehicle int) (uint64, uint64) {
	var a, b uint64
	g.inv.Invoke(h, native.Int(vehicle), native.Out(&a), native.Out(&b))
	return a, b
}

func (g *Game) out3(h native.Hash, vehicle int) (uint64, uint64, uint64) {
	var a, b, c uint64
	g.inv.Invoke(h, native.Int(vehicle), native.Out(&a), native.Out(&b), native.Out(&c))
	return a, b, c
}

func word(v uint64) native.Arg {
	return native.Int(int(int32(uint32(v))))
}

// SpawnCopy creates a vehicle of the same model as old at pos and copies its
// customisation over: plate, mods, tyres, tint, neons, colours, roof, extras
// and livery. The copy is neither stolen nor needs hotwiring. It returns the
// new vehicle handle, 0 when the engine could not create it.
func (g *Game) SpawnCopy(pos core.Vector3, heading float32, old int) int {
	model := g.inv.Invoke(native.GetEntityModel, native.Int(old)).Uint()
	veh := g.inv.Invoke(native.CreateVehicle, native.Uint(model),
		native.Float(pos.X), native.Float(pos.Y), native.Float(pos.Z), native.Float(heading),
		native.Bool(false), native.Bool(true), native.Bool(false),
	).Int()
	if !g.EntityExists(veh) {
		g.logger.Error("Failed to spawn vehicle copy", "model", model)
		return 0
	}
	v := native.Int(veh)
	o := native.Int(old)

	// plate
	plate := g.inv.ReadString(g.inv.Invoke(native.GetVehicleNumberPlateText, o).Word())
	g.inv.Invoke(native.SetVehicleNumberPlateText, v, native.String(plate))
	g.inv.Invoke(native.SetVehicleNumberPlateTextIndex, v,
		native.Int(g.inv.Invoke(native.GetVehicleNumberPlateTextIndex, o).Int()))

	// mods
	customFront := g.inv.Invoke(native.GetVehicleModVariation, o, native.Int(modFrontWheels)).Bool()
	customBack := g.inv.Invoke(native.GetVehicleModVariation, o, native.Int(modBackWheels)).Bool()
	if g.inv.Invoke(native.GetNumModKits, o).Int() != 0 {
		g.inv.Invoke(native.SetVehicleModKit, v, native.Int(0))
		for i := 0; i < vehicleModCount; i++ {
			custom := (i == modFrontWheels && customFront) || (i == modBackWheels && customBack)
			mod := g.inv.Invoke(native.GetVehicleMod, o, native.Int(i)).Int()
			g.inv.Invoke(native.SetVehicleMod, v, native.Int(i), native.Int(mod), native.Bool(custom))

			if isToggleMod(i) && g.inv.Invoke(native.IsToggleModOn, o, native.Int(i)).Bool() {
				g.inv.Invoke(native.ToggleVehicleMod, v, native.Int(i), native.Bool(true))
			}
		}
	}

	g.inv.Invoke(native.SetVehicleTyresCanBurst, v,
		native.Bool(g.inv.Invoke(native.GetVehicleTyresCanBurst, o).Bool()))
	g.inv.Invoke(native.SetVehicleWindowTint, v,
		native.Int(g.inv.Invoke(native.GetVehicleWindowTint, o).Int()))

	r, gr, b := g.out3(native.GetVehicleTyreSmokeColor, old)
	g.inv.Invoke(native.SetVehicleTyreSmokeColor, v, word(r), word(gr), word(b))

	// neons
	r, gr, b = g.out3(native.GetVehicleNeonLightsColour, old)
	g.inv.Invoke(native.SetVehicleNeonLightsColour, v, word(r), word(gr), word(b))
	for i := 0; i < neonLightCount; i++ {
		on := g.inv.Invoke(native.IsVehicleNeonLightEnabled, o, native.Int(i)).Bool()
		g.inv.Invoke(native.SetVehicleNeonLightEnabled, v, native.Int(i), native.Bool(on))
	}

	// colours
	primary, secondary := g.out2(native.GetVehicleColours, old)
	g.inv.Invoke(native.SetVehicleColours, v, word(primary), word(secondary))
	pearl, rim := g.out2(native.GetVehicleExtraColours, old)
	g.inv.Invoke(native.SetVehicleExtraColours, v, word(pearl), word(rim))

	if g.inv.Invoke(native.IsVehicleAConvertible, o, native.Bool(false)).Bool() {
		switch g.inv.Invoke(native.GetConvertibleRoofState, o).Int() {
		case roofLowering, roofLowered:
			g.inv.Invoke(native.LowerConvertibleRoof, v, native.Bool(true))
		case roofRaised, roofRaising:
			g.inv.Invoke(native.RaiseConvertibleRoof, v, native.Bool(true))
		}
	}

	for i := firstExtra; i <= lastExtra; i++ {
		if g.inv.Invoke(native.IsVehicleExtraTurnedOn, o, native.Int(i)).Bool() {
			// the last argument disables the extra
			g.inv.Invoke(native.SetVehicleExtra, v, native.Int(i), native.Bool(false))
		}
	}

	g.inv.Invoke(native.SetVehicleLivery, v, native.Int(g.inv.Invoke(native.GetVehicleLivery, o).Int()))

	g.inv.Invoke(native.SetVehicleNeedsToBeHotwired, v, native.Bool(false))
	g.inv.Invoke(native.SetVehicleIsStolen, v, native.Bool(false))

	return veh
}
