package game

import (
	"github.com/interactiv/extension/internal/scheduler"
	"github.com/interactiv/extension/pkg/native"
)

// Text colours, new lines and icons are written inline in strings, for
// example "~r~red~s~ back to white~n~next line".

// DisplayHelpTextThisFrame shows text in the top left help box. It has to be
// called every frame the text should stay.
func (g *Game) DisplayHelpTextThisFrame(text string) {
	g.inv.Invoke(native.BeginTextCommandDisplayHelp, native.String("STRING"))
	g.inv.Invoke(native.AddTextComponentSubstringPlayerName, native.String(text))
	g.inv.Invoke(native.EndTextCommandDisplayHelp, native.Int(0), native.Bool(false), native.Bool(true), native.Int(-1))
}

// Notify posts a feed notification above the minimap.
func (g *Game) Notify(text string) {
	g.inv.Invoke(native.BeginTextCommandThefeedPost, native.String("STRING"))
	g.inv.Invoke(native.AddTextComponentSubstringPlayerName, native.String(text))
	g.inv.Invoke(native.EndTextCommandThefeedPostTicker, native.Bool(false), native.Bool(true))
}

// NotifyWithPicture posts a notification with a contact picture. The texture
// dictionary is requested now; the notification goes out on the first frame
// it is loaded.
func (g *Game) NotifyWithPicture(picture, title, subtitle, message string) {
	g.inv.Invoke(native.RequestStreamedTextureDict, native.String(picture), native.Bool(false))

	g.scheduler.Schedule("notify:"+picture, scheduler.WaitUntil(
		func() bool {
			return g.inv.Invoke(native.HasStreamedTextureDictLoaded, native.String(picture)).Bool()
		},
		func() {
			g.inv.Invoke(native.BeginTextCommandThefeedPost, native.String("STRING"))
			g.inv.Invoke(native.AddTextComponentSubstringPlayerName, native.String(message))
			g.inv.Invoke(native.EndTextCommandThefeedPostMessage,
				native.String(picture), native.String(picture), native.Bool(false), native.Int(4),
				native.String(title), native.String(subtitle))
			g.inv.Invoke(native.EndTextCommandThefeedPostTicker, native.Bool(false), native.Bool(true))
		},
	))
}

// Color is an RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// TextStyle describes a line of screen text. X and Y are screen fractions.
type TextStyle struct {
	Text   string
	Font   int
	Centre bool
	X, Y   float32
	Scale  float32
	Color  Color
}

// DrawText draws text on screen for this frame only.
func (g *Game) DrawText(s TextStyle) {
	g.inv.Invoke(native.SetTextFont, native.Int(s.Font))
	g.inv.Invoke(native.SetTextProportional, native.Bool(false))
	g.inv.Invoke(native.SetTextScale, native.Float(s.Scale), native.Float(s.Scale))
	g.inv.Invoke(native.SetTextColour,
		native.Int(int(s.Color.R)), native.Int(int(s.Color.G)), native.Int(int(s.Color.B)), native.Int(int(s.Color.A)))
	g.inv.Invoke(native.SetTextDropshadow, native.Int(0), native.Int(0), native.Int(0), native.Int(0), native.Int(255))
	g.inv.Invoke(native.SetTextEdge, native.Int(1), native.Int(0), native.Int(0), native.Int(0), native.Int(255))
	g.inv.Invoke(native.SetTextDropShadow)
	g.inv.Invoke(native.SetTextOutline)
	g.inv.Invoke(native.SetTextCentre, native.Bool(s.Centre))
	g.inv.Invoke(native.BeginTextCommandDisplayText, native.String("STRING"))
	g.inv.Invoke(native.AddTextComponentSubstringPlayerName, native.String(s.Text))
	g.inv.Invoke(native.EndTextCommandDisplayText, native.Float(s.X), native.Float(s.Y), native.Int(0))
}
