package game

import (
	"github.com/interactiv/extension/pkg/core"
	"github.com/interactiv/extension/pkg/native"
)

// MarkerType is the shape drawn by DrawMarker.
type MarkerType int

const (
	MarkerUpsideDownCone MarkerType = iota
	MarkerVerticalCylinder
	MarkerThickChevronUp
	MarkerThinChevronUp
	MarkerCheckeredFlagRect
	MarkerCheckeredFlagCircle
	MarkerVerticalCircle
	MarkerPlaneModel
	MarkerLostMCDark
	MarkerLostMCLight
	MarkerNumber0
	MarkerNumber1
	MarkerNumber2
	MarkerNumber3
	MarkerNumber4
	MarkerNumber5
	MarkerNumber6
	MarkerNumber7
	MarkerNumber8
	MarkerNumber9
	MarkerChevronUpx1
	MarkerChevronUpx2
	MarkerChevronUpx3
	MarkerHorizontalCircleFat
	MarkerReplayIcon
	MarkerHorizontalCircleSkinny
	MarkerHorizontalCircleSkinnyArrow
	MarkerHorizontalSplitArrowCircle
	MarkerDebugSphere
	MarkerDollarSign
	MarkerHorizontalBars
	MarkerWolfHead
)

type marker struct {
	kind  MarkerType
	scale core.Vector3
	color Color
}

// MarkerOption changes how a marker is drawn.
type MarkerOption func(*marker)

// WithMarkerType sets the shape.
func WithMarkerType(t MarkerType) MarkerOption {
	return func(m *marker) {
		m.kind = t
	}
}

// WithMarkerScale sets the size on each axis.
func WithMarkerScale(scale core.Vector3) MarkerOption {
	return func(m *marker) {
		m.scale = scale
	}
}

// WithMarkerColor sets the colour.
func WithMarkerColor(c Color) MarkerOption {
	return func(m *marker) {
		m.color = c
	}
}

// DrawMarker draws a marker at pos for this frame. By default it is a
// translucent yellow vertical cylinder two units wide.
func (g *Game) DrawMarker(pos core.Vector3, opts ...MarkerOption) {
	m := marker{
		kind:  MarkerVerticalCylinder,
		scale: core.Vector3{X: 2, Y: 2, Z: 0.5},
		color: Color{R: 255, G: 255, B: 0, A: 128},
	}
	for _, opt := range opts {
		opt(&m)
	}

	g.inv.Invoke(native.DrawMarker,
		native.Int(int(m.kind)),
		native.Float(pos.X), native.Float(pos.Y), native.Float(pos.Z),
		native.Float(0), native.Float(0), native.Float(0), // direction
		native.Float(0), native.Float(0), native.Float(0), // rotation
		native.Float(m.scale.X), native.Float(m.scale.Y), native.Float(m.scale.Z),
		native.Int(int(m.color.R)), native.Int(int(m.color.G)), native.Int(int(m.color.B)), native.Int(int(m.color.A)),
		native.Bool(false), native.Bool(false), native.Int(2), native.Bool(false),
		native.Uint(0), native.Uint(0), native.Bool(false),
	)
}
