package game

import (
	"time"

	"github.com/interactiv/extension/internal/scheduler"
	"github.com/interactiv/extension/pkg/native"
)

// fadeSettle is how long the screen stays black after fading out.
const fadeSettle = 500 * time.Millisecond

// Fade fades the screen out over out, keeps it black briefly, then fades it
// back in over in. A zero in reuses out.
func (g *Game) Fade(out, in time.Duration) {
	if in == 0 {
		in = out
	}

	g.scheduler.Schedule("camera:fade", scheduler.Sequence(
		func(time.Time) bool {
			g.inv.Invoke(native.DoScreenFadeOut, native.Int(int(out.Milliseconds())))
			return true
		},
		scheduler.After(out+fadeSettle, func() {
			g.inv.Invoke(native.DoScreenFadeIn, native.Int(int(in.Milliseconds())))
		}),
	))
}
