// pkg/core/situation.go
package core

// Situation is what the engine reports about the player for the current frame.
// Vehicle class flags are only meaningful when InVehicle is set.
type Situation struct {
	InVehicle  bool
	Car        bool
	Boat       bool
	Plane      bool
	Helicopter bool
	Taxi       bool
	Bike       bool
	Bicycle    bool
}

// OnFoot reports whether the player is outside any vehicle.
func (s Situation) OnFoot() bool {
	return !s.InVehicle
}
