package props

import (
	"fmt"
	"strings"

	"github.com/interactiv/extension/internal/util"
	"github.com/interactiv/extension/pkg/core"
)

// Accessibility is the set of player situations in which a prop can be used.
// Flags combine with |.
type Accessibility uint32

const (
	AccessOnFoot Accessibility = 1 << iota
	AccessInVehicle
	AccessInCar
	AccessInBoat
	AccessInPlane
	AccessInHelicopter
	AccessInTaxi
	AccessOnBike
	AccessOnBicycle
)

const (
	// AccessNone matches no situation.
	AccessNone Accessibility = 0
	// AccessAll is the union of every situation flag.
	AccessAll = AccessOnFoot | AccessInVehicle | AccessInCar | AccessInBoat |
		AccessInPlane | AccessInHelicopter | AccessInTaxi | AccessOnBike | AccessOnBicycle
)

var accessibilityNames = []struct {
	flag Accessibility
	name string
}{
	{AccessOnFoot, "OnFoot"},
	{AccessInVehicle, "InVehicle"},
	{AccessInCar, "InCar"},
	{AccessInBoat, "InBoat"},
	{AccessInPlane, "InPlane"},
	{AccessInHelicopter, "InHeli"},
	{AccessInTaxi, "InTaxi"},
	{AccessOnBike, "OnBike"},
	{AccessOnBicycle, "OnBicycle"},
}

var accessibilityTokens = map[string]Accessibility{
	"none":         AccessNone,
	"all":          AccessAll,
	"onfoot":       AccessOnFoot,
	"invehicle":    AccessInVehicle,
	"incar":        AccessInCar,
	"inboat":       AccessInBoat,
	"inplane":      AccessInPlane,
	"inheli":       AccessInHelicopter,
	"inhelicopter": AccessInHelicopter,
	"intaxi":       AccessInTaxi,
	"onbike":       AccessOnBike,
	"onbicycle":    AccessOnBicycle,
	"onbicyle":     AccessOnBicycle, // spelling used by early props files
}

// Has reports whether every flag of f is set in a.
func (a Accessibility) Has(f Accessibility) bool {
	return f != AccessNone && a&f == f
}

func (a Accessibility) String() string {
	switch a {
	case AccessNone:
		return "None"
	case AccessAll:
		return "All"
	}
	var parts []string
	for _, n := range accessibilityNames {
		if a.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseAccessibility reads a flag name, a list of names separated by '|' or
// ',', or a decimal/hex bitmask.
func ParseAccessibility(s string) (Accessibility, error) {
	if v, ok := util.ParseUint(s); ok {
		if Accessibility(v)&^AccessAll != 0 {
			return AccessNone, fmt.Errorf("%w: accessibility %q has unknown bits", ErrUnknownToken, s)
		}
		return Accessibility(v), nil
	}

	fields := strings.FieldsFunc(util.TrimQuotes(strings.TrimSpace(s)), func(r rune) bool {
		return r == '|' || r == ','
	})
	if len(fields) == 0 {
		return AccessNone, fmt.Errorf("%w: empty accessibility", ErrUnknownToken)
	}

	var mask Accessibility
	for _, f := range fields {
		flag, ok := accessibilityTokens[util.NormalizeToken(f)]
		if !ok {
			return AccessNone, fmt.Errorf("%w: accessibility %q", ErrUnknownToken, strings.TrimSpace(f))
		}
		mask |= flag
	}
	return mask, nil
}

// Accessible reports whether a prop with mask can be used in situation s.
// A prop is usable when any flag of its mask matches; AccessNone never does.
func Accessible(mask Accessibility, s core.Situation) bool {
	checks := []struct {
		flag Accessibility
		ok   bool
	}{
		{AccessOnFoot, s.OnFoot()},
		{AccessInVehicle, s.InVehicle},
		{AccessInCar, s.InVehicle && s.Car},
		{AccessInBoat, s.InVehicle && s.Boat},
		{AccessInPlane, s.InVehicle && s.Plane},
		{AccessInHelicopter, s.InVehicle && s.Helicopter},
		{AccessInTaxi, s.InVehicle && s.Taxi},
		{AccessOnBike, s.InVehicle && s.Bike},
		{AccessOnBicycle, s.InVehicle && s.Bicycle},
	}
	for _, c := range checks {
		if mask.Has(c.flag) && c.ok {
			return true
		}
	}
	return false
}
