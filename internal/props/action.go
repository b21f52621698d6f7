package props

import (
	"fmt"

	"github.com/interactiv/extension/internal/util"
)

// ActionTag names what happens when a prop is used. Tags are labels only;
// the handlers registered for them live in internal/actions.
type ActionTag uint8

const (
	ActionNone ActionTag = iota
	ActionSit
	ActionDrinkCoffee
	ActionDrinkCola
	ActionDrinkSprunk
)

// ActionTags lists every tag in declaration order.
var ActionTags = []ActionTag{ActionNone, ActionSit, ActionDrinkCoffee, ActionDrinkCola, ActionDrinkSprunk}

var actionNames = map[ActionTag]string{
	ActionNone:        "None",
	ActionSit:         "Sit",
	ActionDrinkCoffee: "DrinkCoffee",
	ActionDrinkCola:   "DrinkCola",
	ActionDrinkSprunk: "DrinkSprunk",
}

var actionTokens = map[string]ActionTag{
	"none":        ActionNone,
	"sit":         ActionSit,
	"drinkcoffee": ActionDrinkCoffee,
	"drinkcola":   ActionDrinkCola,
	"drinkecola":  ActionDrinkCola,
	"drinksprunk": ActionDrinkSprunk,
}

func (a ActionTag) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("ActionTag(%d)", uint8(a))
}

// ParseAction reads an action name or its numeric value.
func ParseAction(s string) (ActionTag, error) {
	if v, ok := util.ParseUint(s); ok {
		if v >= uint64(len(ActionTags)) {
			return ActionNone, fmt.Errorf("%w: action %q", ErrUnknownToken, s)
		}
		return ActionTag(v), nil
	}
	if a, ok := actionTokens[util.NormalizeToken(s)]; ok {
		return a, nil
	}
	return ActionNone, fmt.Errorf("%w: action %q", ErrUnknownToken, s)
}
