// pkg/core/session.go
package core

import "time"

// Session is one load of the plugin inside the game process.
type Session struct {
	ID               string
	StartTime        time.Time
	ExtensionVersion string
	Character        string
	PropsFile        string
	PropsLoaded      int
}

// Interaction is recorded every time a prop action is dispatched.
type Interaction struct {
	SessionID  string
	Time       time.Time
	Tick       uint64
	ModelName  string
	Action     string
	Control    uint16
	Position   Vector3
	Offsets    []Vector3
	Accessible uint32 // accessibility mask of the prop
}

// TyreSlash is recorded every time the player bursts a tyre.
type TyreSlash struct {
	SessionID    string
	Time         time.Time
	Tick         uint64
	VehicleModel string
	Tyre         int
	Position     Vector3
}
