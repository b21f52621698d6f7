package game

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/interactiv/extension/internal/dispatcher"
	"github.com/interactiv/extension/internal/scheduler"
	"github.com/interactiv/extension/internal/util"
	"github.com/interactiv/extension/pkg/core"
)

// Commands the host script can send to drive the engine helpers. Every one of
// them only queues work on the scheduler: natives may only be called from the
// engine thread, which polls the scheduler once per frame.
const (
	CmdNotify        = ":NOTIFY:"
	CmdNotifyPicture = ":NOTIFY:PICTURE:"
	CmdText          = ":TEXT:"
	CmdMarker        = ":MARKER:"
	CmdFade          = ":FADE:"
	CmdCashAdd       = ":CASH:ADD:"
	CmdVehicleCopy   = ":VEHICLE:COPY:"
)

// ErrBadArgs is returned for a command with missing or unreadable arguments.
var ErrBadArgs = errors.New("bad command arguments")

const (
	defaultShowFor    = 3 * time.Second
	vehicleCopyRadius = 10
)

// vehicleCopyOffset is where a copy is placed relative to the original.
var vehicleCopyOffset = core.Vector3{X: 5}

// Register adds the engine helper commands to d.
func (g *Game) Register(d *dispatcher.Dispatcher) {
	d.Register(CmdNotify, func(e dispatcher.Event) (any, error) {
		args, err := needArgs(e, 1)
		if err != nil {
			return nil, err
		}
		g.scheduler.Schedule("notify", once(func() { g.Notify(args[0]) }))
		return "queued", nil
	})

	d.Register(CmdNotifyPicture, func(e dispatcher.Event) (any, error) {
		args, err := needArgs(e, 4)
		if err != nil {
			return nil, err
		}
		g.scheduler.Schedule("notify:request", once(func() {
			g.NotifyWithPicture(args[0], args[1], args[2], args[3])
		}))
		return "queued", nil
	})

	d.Register(CmdText, func(e dispatcher.Event) (any, error) {
		args, err := needArgs(e, 1)
		if err != nil {
			return nil, err
		}
		showFor, err := optionalSeconds(args, 1)
		if err != nil {
			return nil, err
		}
		style := TextStyle{
			Text:   args[0],
			Font:   4,
			Centre: true,
			X:      0.5,
			Y:      0.8,
			Scale:  0.5,
			Color:  Color{R: 255, G: 255, B: 255, A: 255},
		}
		g.scheduler.Schedule("text", everyFrameFor(showFor, func() { g.DrawText(style) }))
		return "queued", nil
	}, dispatcher.Logged())

	d.Register(CmdMarker, func(e dispatcher.Event) (any, error) {
		args, err := needArgs(e, 3)
		if err != nil {
			return nil, err
		}
		var pos core.Vector3
		for i, dst := range []*float32{&pos.X, &pos.Y, &pos.Z} {
			v, ok := util.ParseFloat(args[i])
			if !ok {
				return nil, fmt.Errorf("%w: coordinate %q", ErrBadArgs, args[i])
			}
			*dst = v
		}
		showFor, err := optionalSeconds(args, 3)
		if err != nil {
			return nil, err
		}
		g.scheduler.Schedule("marker", everyFrameFor(showFor, func() { g.DrawMarker(pos) }))
		return "queued", nil
	}, dispatcher.Logged())

	d.Register(CmdFade, func(e dispatcher.Event) (any, error) {
		args, err := needArgs(e, 1)
		if err != nil {
			return nil, err
		}
		out, err := millis(args[0])
		if err != nil {
			return nil, err
		}
		var in time.Duration
		if len(args) > 1 {
			if in, err = millis(args[1]); err != nil {
				return nil, err
			}
		}
		g.Fade(out, in)
		return "queued", nil
	}, dispatcher.Logged())

	d.Register(CmdCashAdd, func(e dispatcher.Event) (any, error) {
		args, err := needArgs(e, 1)
		if err != nil {
			return nil, err
		}
		delta, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: cash %q", ErrBadArgs, args[0])
		}
		g.scheduler.Schedule("cash", once(func() {
			if !g.AddCash(delta) {
				g.logger.Info("Not enough cash", "delta", delta)
			}
		}))
		return "queued", nil
	}, dispatcher.Logged())

	d.Register(CmdVehicleCopy, func(e dispatcher.Event) (any, error) {
		var heading float32
		if len(e.Args) > 0 {
			v, ok := util.ParseFloat(util.TrimQuotes(e.Args[0]))
			if !ok {
				return nil, fmt.Errorf("%w: heading %q", ErrBadArgs, e.Args[0])
			}
			heading = v
		}
		g.scheduler.Schedule("vehicle:copy", once(func() {
			old, ok := g.ClosestVehicle(g.PlayerPosition(), vehicleCopyRadius)
			if !ok {
				g.logger.Info("No vehicle to copy nearby")
				return
			}
			g.SpawnCopy(g.EntityPosition(old).Add(vehicleCopyOffset), heading, old)
		}))
		return "queued", nil
	}, dispatcher.Logged())
}

// needArgs returns the unquoted arguments of e, failing when fewer than n.
func needArgs(e dispatcher.Event, n int) ([]string, error) {
	if len(e.Args) < n {
		return nil, fmt.Errorf("%w: %s wants %d, got %d", ErrBadArgs, e.Command, n, len(e.Args))
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = util.TrimQuotes(a)
	}
	return args, nil
}

func optionalSeconds(args []string, i int) (time.Duration, error) {
	if len(args) <= i {
		return defaultShowFor, nil
	}
	v, ok := util.ParseFloat(args[i])
	if !ok || v <= 0 {
		return 0, fmt.Errorf("%w: seconds %q", ErrBadArgs, args[i])
	}
	return time.Duration(float64(v) * float64(time.Second)), nil
}

func millis(s string) (time.Duration, error) {
	v, ok := util.ParseUint(s)
	if !ok {
		return 0, fmt.Errorf("%w: milliseconds %q", ErrBadArgs, s)
	}
	return time.Duration(v) * time.Millisecond, nil
}

// once wraps fn as a task that runs on the next frame.
func once(fn func()) scheduler.Task {
	return func(time.Time) bool {
		fn()
		return true
	}
}

// everyFrameFor runs draw on every frame until d has passed since the first.
func everyFrameFor(d time.Duration, draw func()) scheduler.Task {
	var until time.Time
	return func(now time.Time) bool {
		if until.IsZero() {
			until = now.Add(d)
		}
		if !now.Before(until) {
			return true
		}
		draw()
		return false
	}
}
