package props

import (
	"fmt"

	"github.com/interactiv/extension/internal/util"
)

// Control is an engine input control id (the INPUT_* enumeration).
type Control uint16

// maxControl is the highest control id known to the engine.
const maxControl = 360

const (
	ControlNextCamera        Control = 0
	ControlSprint            Control = 21
	ControlJump              Control = 22
	ControlEnter             Control = 23
	ControlAttack            Control = 24
	ControlAim               Control = 25
	ControlLookBehind        Control = 26
	ControlPhone             Control = 27
	ControlDuck              Control = 36
	ControlSelectWeapon      Control = 37
	ControlPickup            Control = 38
	ControlCover             Control = 44
	ControlReload            Control = 45
	ControlTalk              Control = 46
	ControlDetonate          Control = 47
	ControlContext           Control = 51
	ControlContextSecondary  Control = 52
	ControlVehicleAccelerate Control = 71
	ControlVehicleBrake      Control = 72
	ControlVehicleDuck       Control = 73
	ControlVehicleHeadlight  Control = 74
	ControlVehicleExit       Control = 75
	ControlVehicleHandbrake  Control = 76
	ControlVehicleRadioWheel Control = 85
	ControlVehicleHorn       Control = 86
	ControlVehicleRoof       Control = 101
	ControlMeleeAttackLight  Control = 140
	ControlMeleeAttackHeavy  Control = 141
	ControlFrontendPause     Control = 199
	ControlFrontendAccept    Control = 201
	ControlFrontendCancel    Control = 202
	ControlInteractionMenu   Control = 244
)

// ControlDefault is used when a prop names no control.
const ControlDefault = ControlContext

var controlNames = map[Control]string{
	ControlNextCamera:        "NextCamera",
	ControlSprint:            "Sprint",
	ControlJump:              "Jump",
	ControlEnter:             "Enter",
	ControlAttack:            "Attack",
	ControlAim:               "Aim",
	ControlLookBehind:        "LookBehind",
	ControlPhone:             "Phone",
	ControlDuck:              "Duck",
	ControlSelectWeapon:      "SelectWeapon",
	ControlPickup:            "Pickup",
	ControlCover:             "Cover",
	ControlReload:            "Reload",
	ControlTalk:              "Talk",
	ControlDetonate:          "Detonate",
	ControlContext:           "Context",
	ControlContextSecondary:  "ContextSecondary",
	ControlVehicleAccelerate: "VehicleAccelerate",
	ControlVehicleBrake:      "VehicleBrake",
	ControlVehicleDuck:       "VehicleDuck",
	ControlVehicleHeadlight:  "VehicleHeadlight",
	ControlVehicleExit:       "VehicleExit",
	ControlVehicleHandbrake:  "VehicleHandbrake",
	ControlVehicleRadioWheel: "VehicleRadioWheel",
	ControlVehicleHorn:       "VehicleHorn",
	ControlVehicleRoof:       "VehicleRoof",
	ControlMeleeAttackLight:  "MeleeAttackLight",
	ControlMeleeAttackHeavy:  "MeleeAttackHeavy",
	ControlFrontendPause:     "FrontendPause",
	ControlFrontendAccept:    "FrontendAccept",
	ControlFrontendCancel:    "FrontendCancel",
	ControlInteractionMenu:   "InteractionMenu",
}

// engineControlNames are the INPUT_* names the engine uses. They shorten
// "Vehicle" to "VEH" so they cannot be derived from controlNames.
var engineControlNames = map[Control]string{
	ControlNextCamera:        "INPUT_NEXT_CAMERA",
	ControlSprint:            "INPUT_SPRINT",
	ControlJump:              "INPUT_JUMP",
	ControlEnter:             "INPUT_ENTER",
	ControlAttack:            "INPUT_ATTACK",
	ControlAim:               "INPUT_AIM",
	ControlLookBehind:        "INPUT_LOOK_BEHIND",
	ControlPhone:             "INPUT_PHONE",
	ControlDuck:              "INPUT_DUCK",
	ControlSelectWeapon:      "INPUT_SELECT_WEAPON",
	ControlPickup:            "INPUT_PICKUP",
	ControlCover:             "INPUT_COVER",
	ControlReload:            "INPUT_RELOAD",
	ControlTalk:              "INPUT_TALK",
	ControlDetonate:          "INPUT_DETONATE",
	ControlContext:           "INPUT_CONTEXT",
	ControlContextSecondary:  "INPUT_CONTEXT_SECONDARY",
	ControlVehicleAccelerate: "INPUT_VEH_ACCELERATE",
	ControlVehicleBrake:      "INPUT_VEH_BRAKE",
	ControlVehicleDuck:       "INPUT_VEH_DUCK",
	ControlVehicleHeadlight:  "INPUT_VEH_HEADLIGHT",
	ControlVehicleExit:       "INPUT_VEH_EXIT",
	ControlVehicleHandbrake:  "INPUT_VEH_HANDBRAKE",
	ControlVehicleRadioWheel: "INPUT_VEH_RADIO_WHEEL",
	ControlVehicleHorn:       "INPUT_VEH_HORN",
	ControlVehicleRoof:       "INPUT_VEH_ROOF",
	ControlMeleeAttackLight:  "INPUT_MELEE_ATTACK_LIGHT",
	ControlMeleeAttackHeavy:  "INPUT_MELEE_ATTACK_HEAVY",
	ControlFrontendPause:     "INPUT_FRONTEND_PAUSE",
	ControlFrontendAccept:    "INPUT_FRONTEND_ACCEPT",
	ControlFrontendCancel:    "INPUT_FRONTEND_CANCEL",
	ControlInteractionMenu:   "INPUT_INTERACTION_MENU",
}

// controlTokens accepts both the scripting names ("VehicleHorn") and the
// engine names ("INPUT_VEH_HORN").
var controlTokens = func() map[string]Control {
	m := make(map[string]Control, len(controlNames)+len(engineControlNames))
	for c, n := range controlNames {
		m[util.NormalizeToken(n)] = c
	}
	for c, n := range engineControlNames {
		m[util.NormalizeToken(n)] = c
	}
	return m
}()

func (c Control) String() string {
	if n, ok := controlNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Control(%d)", uint16(c))
}

// ParseControl reads a control name or its numeric id.
func ParseControl(s string) (Control, error) {
	if v, ok := util.ParseUint(s); ok {
		if v > maxControl {
			return ControlDefault, fmt.Errorf("%w: control %q out of range", ErrUnknownToken, s)
		}
		return Control(v), nil
	}
	if c, ok := controlTokens[util.NormalizeToken(s)]; ok {
		return c, nil
	}
	return ControlDefault, fmt.Errorf("%w: control %q", ErrUnknownToken, s)
}
