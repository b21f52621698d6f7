// pkg/core/vector.go
package core

import (
	"fmt"
	"math"
)

// Vector3 is a position or offset in engine world space.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// DistanceTo returns the euclidean distance between v and o.
func (v Vector3) DistanceTo(o Vector3) float32 {
	dx := float64(v.X - o.X)
	dy := float64(v.Y - o.Y)
	dz := float64(v.Z - o.Z)
	return float32(math.Sqrt(dx*dx + dy*dy + dz*dz))
}

func (v Vector3) String() string {
	return fmt.Sprintf("X:%.2f Y:%.2f Z:%.2f", v.X, v.Y, v.Z)
}
