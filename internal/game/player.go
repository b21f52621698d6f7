package game

import (
	"fmt"

	"github.com/interactiv/extension/pkg/native"
)

// Story characters as reported by CurrentCharacterID.
const (
	Michael  = 0
	Franklin = 1
	Trevor   = 2
)

var characterNames = map[int][2]string{
	Michael:  {"Michael", "De Santa"},
	Franklin: {"Franklin", "Clinton"},
	Trevor:   {"Trevor", "Philips"},
}

// CurrentCharacterID returns 0 for Michael, 1 for Franklin and 2 for Trevor.
// Trevor's ped type is 3 but the stats use 2.
func (g *Game) CurrentCharacterID() int {
	id := g.inv.Invoke(native.GetPedType, native.Int(g.PlayerPed())).Int()
	if id == 3 {
		id = Trevor
	}
	return id
}

// CurrentCharacterName returns the first name, with the last name when full
// is set, or "???" for any other ped.
func (g *Game) CurrentCharacterName(full bool) string {
	n, ok := characterNames[g.CurrentCharacterID()]
	if !ok {
		return "???"
	}
	if full {
		return n[0] + " " + n[1]
	}
	return n[0]
}

func (g *Game) cashStat() uint32 {
	return g.models.Hash(fmt.Sprintf("SP%d_TOTAL_CASH", g.CurrentCharacterID()))
}

func (g *Game) statInt(stat uint32) int {
	var out uint64
	g.inv.Invoke(native.StatGetInt, native.Uint(stat), native.Out(&out), native.Int(-1))
	return int(int32(uint32(out)))
}

// Cash returns the current character's money.
func (g *Game) Cash() int {
	return g.statInt(g.cashStat())
}

// AddCash adds delta to the current character's money; a negative delta
// removes it. It returns false, leaving the money untouched, when the player
// cannot afford the removal.
func (g *Game) AddCash(delta int) bool {
	stat := g.cashStat()
	cash := g.statInt(stat)

	if cash+delta < 0 {
		return false
	}
	g.inv.Invoke(native.StatSetInt, native.Uint(stat), native.Int(cash+delta), native.Bool(true))
	return true
}
