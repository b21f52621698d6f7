package props

import (
	"fmt"

	"github.com/interactiv/extension/internal/util"
)

// Marker is the marker drawn over a prop. Only MarkerNone exists for now.
type Marker uint8

const MarkerNone Marker = 0

func (m Marker) String() string {
	if m == MarkerNone {
		return "None"
	}
	return fmt.Sprintf("Marker(%d)", uint8(m))
}

// ParseMarker reads a marker name or its numeric value.
func ParseMarker(s string) (Marker, error) {
	if v, ok := util.ParseUint(s); ok && v == uint64(MarkerNone) {
		return MarkerNone, nil
	}
	if util.NormalizeToken(s) == "none" {
		return MarkerNone, nil
	}
	return MarkerNone, fmt.Errorf("%w: marker %q", ErrUnknownToken, s)
}
