package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3_Add(t *testing.T) {
	v := Vector3{X: 1, Y: 2, Z: 3}.Add(Vector3{Z: -0.5})
	assert.Equal(t, Vector3{X: 1, Y: 2, Z: 2.5}, v)
}

func TestVector3_DistanceTo(t *testing.T) {
	a := Vector3{X: 0, Y: 0, Z: 0}
	b := Vector3{X: 3, Y: 4, Z: 0}
	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-6)
	assert.InDelta(t, 0.0, a.DistanceTo(a), 1e-6)
}

func TestSituation_OnFoot(t *testing.T) {
	assert.True(t, Situation{}.OnFoot())
	assert.False(t, Situation{InVehicle: true, Car: true}.OnFoot())
}
