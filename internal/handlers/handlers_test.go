package handlers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/interactiv/extension/internal/actions"
	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/internal/dispatcher"
	"github.com/interactiv/extension/internal/monitor"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/internal/session"
	"github.com/interactiv/extension/internal/slash"
	"github.com/interactiv/extension/internal/storage/memory"
	"github.com/interactiv/extension/pkg/core"
	"github.com/interactiv/extension/pkg/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// fakeWorld is a player standing next to whatever the test places.
type fakeWorld struct {
	situation core.Situation
	objects   map[uint32]int
	vehicle   int
	released  map[props.Control]bool
	character string

	burst    []int
	helpText []string
}

var _ World = (*fakeWorld)(nil)

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		objects:   make(map[uint32]int),
		released:  make(map[props.Control]bool),
		character: "Franklin",
	}
}

func (w *fakeWorld) PlayerPosition() core.Vector3             { return core.Vector3{X: 10, Y: 20, Z: 30} }
func (w *fakeWorld) Situation() core.Situation                { return w.situation }
func (w *fakeWorld) ControlJustReleased(c props.Control) bool { return w.released[c] }
func (w *fakeWorld) DisplayHelpText(text string)              { w.helpText = append(w.helpText, text) }
func (w *fakeWorld) TyresCanBurst(int) bool                   { return true }
func (w *fakeWorld) BurstTyre(_, tyre int)                    { w.burst = append(w.burst, tyre) }
func (w *fakeWorld) VehicleModelName(int) string              { return "BUFFALO" }
func (w *fakeWorld) CurrentCharacterName(bool) string         { return w.character }

func (w *fakeWorld) ClosestVehicle(core.Vector3, float32) (int, bool) {
	return w.vehicle, w.vehicle != 0
}

func (w *fakeWorld) ClosestObject(_ core.Vector3, _ float32, model uint32) (int, bool) {
	h, ok := w.objects[model]
	return h, ok
}

func (w *fakeWorld) Wheels(int) []slash.Wheel {
	return []slash.Wheel{
		{Tyre: 0, Position: core.Vector3{X: 50}},
		{Tyre: 4, Position: core.Vector3{X: 10, Y: 20, Z: 30}},
	}
}

type fixture struct {
	svc        *Service
	world      *fakeWorld
	backend    *memory.Backend
	dispatcher *dispatcher.Dispatcher
	session    *session.Context
	catalog    *props.Catalog
}

func newFixture(t *testing.T, defs ...props.Definition) *fixture {
	t.Helper()

	d, err := dispatcher.New(nopLogger{})
	require.NoError(t, err)

	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, backend.Init())

	sess := session.NewContext("1.2.3")
	s := sess.Get()
	require.NoError(t, backend.StartSession(&s))

	act := actions.New(actions.Dependencies{
		Dispatcher: d,
		Recorder:   backend,
		SessionID:  sess.ID,
	})
	act.Register()

	f := &fixture{
		world:      newFakeWorld(),
		backend:    backend,
		dispatcher: d,
		session:    sess,
		catalog:    props.NewCatalog(defs),
	}
	f.svc = NewService(Dependencies{
		Dispatcher:       d,
		World:            f.world,
		Catalog:          f.catalog,
		Session:          sess,
		Actions:          act,
		Backend:          backend,
		PropsPath:        filepath.Join(t.TempDir(), "missing.xml"),
		Slash:            config.SlashConfig{Enabled: true, Radius: 2, Control: "Context"},
		ExtensionVersion: "1.2.3",
		BuildDate:        "2026-10-01",
	})
	f.svc.Register()

	t.Cleanup(d.Close)
	return f
}

func (f *fixture) dispatch(t *testing.T, command string, args ...string) any {
	t.Helper()
	result, err := f.dispatcher.Dispatch(dispatcher.Event{Command: command, Args: args})
	require.NoError(t, err)
	return result
}

func TestRegister_Commands(t *testing.T) {
	f := newFixture(t)

	for _, cmd := range []string{CmdTick, CmdKeyDown, CmdKeyUp, CmdVersion, CmdReload, CmdStatus, CmdTyreSlashed, CmdSessionUpdate} {
		assert.True(t, f.dispatcher.HasHandler(cmd), cmd)
	}
}

func TestVersion(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"1.2.3", "2026-10-01"}, f.dispatch(t, CmdVersion))
}

func TestKeyCommands_AreAccepted(t *testing.T) {
	f := newFixture(t)

	assert.Nil(t, f.dispatch(t, CmdKeyDown, "69"))
	assert.Nil(t, f.dispatch(t, CmdKeyUp))
}

func TestTick_CountsFrames(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, CmdTick)
	f.dispatch(t, CmdTick)
	f.svc.Tick(time.Now())

	assert.Equal(t, uint64(3), f.svc.Ticks())
	assert.GreaterOrEqual(t, f.svc.LastTick(), time.Duration(0))
}

func TestTick_TracksCharacter(t *testing.T) {
	f := newFixture(t)

	f.svc.Tick(time.Now())
	assert.Equal(t, "Franklin", f.session.Get().Character)

	f.world.character = "Trevor"
	f.svc.Tick(time.Now())
	assert.Equal(t, "Trevor", f.session.Get().Character)
}

func TestTick_RecordsPropAction(t *testing.T) {
	bench := props.NewDefinition("prop_bench_01a", props.ActionSit, nil, props.WithHelpText("Sit down"))
	f := newFixture(t, bench)
	f.world.objects[native.Joaat("prop_bench_01a")] = 77

	f.svc.Tick(time.Now())
	assert.Equal(t, []string{"Sit down"}, f.world.helpText)
	assert.Empty(t, f.backend.Interactions())

	f.world.released[props.ControlContext] = true
	f.svc.Tick(time.Now())

	require.Eventually(t, func() bool {
		return len(f.backend.Interactions()) == 1
	}, time.Second, 10*time.Millisecond)

	got := f.backend.Interactions()[0]
	assert.Equal(t, "prop_bench_01a", got.ModelName)
	assert.Equal(t, "Sit", got.Action)
	assert.Equal(t, uint64(2), got.Tick)
	assert.Equal(t, f.session.ID(), got.SessionID)
	assert.Equal(t, uint64(1), f.svc.Status().ActionsDispatched)
}

func TestTick_RecordsTyreSlash(t *testing.T) {
	f := newFixture(t)
	f.world.vehicle = 12
	f.world.released[props.ControlContext] = true

	f.svc.Tick(time.Now())

	assert.Equal(t, []int{4}, f.world.burst)
	require.Eventually(t, func() bool {
		return len(f.backend.TyreSlashes()) == 1
	}, time.Second, 10*time.Millisecond)

	got := f.backend.TyreSlashes()[0]
	assert.Equal(t, "BUFFALO", got.VehicleModel)
	assert.Equal(t, 4, got.Tyre)
	assert.Equal(t, f.session.ID(), got.SessionID)
	assert.Equal(t, uint64(1), f.svc.Status().TyresSlashed)
}

func TestTick_NoSlashInVehicle(t *testing.T) {
	f := newFixture(t)
	f.world.vehicle = 12
	f.world.situation = core.Situation{InVehicle: true, Car: true}
	f.world.released[props.ControlContext] = true

	f.svc.Tick(time.Now())

	assert.Empty(t, f.world.burst)
}

func TestTyreSlashed_WrongPayload(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.recordTyreSlash(dispatcher.Event{Command: CmdTyreSlashed, Payload: "nope"})
	assert.ErrorIs(t, err, ErrWrongPayload)
}

func TestNewService_InvalidSlashControl(t *testing.T) {
	d, err := dispatcher.New(nopLogger{})
	require.NoError(t, err)
	defer d.Close()

	svc := NewService(Dependencies{
		Dispatcher: d,
		World:      newFakeWorld(),
		Actions:    actions.New(actions.Dependencies{Dispatcher: d}),
		Slash:      config.SlashConfig{Enabled: true, Control: "Sneeze"},
	})

	require.NotNil(t, svc.Slasher())
	assert.Equal(t, 0, svc.Status().PropsLoaded)
}

const reloadDocument = `<?xml version="1.0"?>
<props>
	<prop>
		<modelName>prop_vend_coffe_01</modelName>
		<action>DrinkCoffee</action>
	</prop>
	<prop>
		<modelName>prop_vend_soda_01</modelName>
		<action>DrinkCola</action>
		<accessibility>Flying</accessibility>
	</prop>
	<prop>
		<modelName>prop_vend_soda_02</modelName>
		<action>DrinkSprunk</action>
	</prop>
</props>`

func TestReload_SwapsCatalog(t *testing.T) {
	f := newFixture(t, props.NewDefinition("prop_bench_01a", props.ActionSit, nil))
	f.world.objects[native.Joaat("prop_bench_01a")] = 77
	f.svc.Tick(time.Now())
	assert.Equal(t, "prop_bench_01a", f.svc.Scanner().Current())

	path := filepath.Join(t.TempDir(), "propsList.xml")
	require.NoError(t, os.WriteFile(path, []byte(reloadDocument), 0644))

	assert.Equal(t, 2, f.dispatch(t, CmdReload, `"`+path+`"`))
	require.Equal(t, 2, f.catalog.Len())
	assert.Equal(t, "prop_vend_coffe_01", f.catalog.All()[0].ModelName())

	s := f.session.Get()
	assert.Equal(t, path, s.PropsFile)
	assert.Equal(t, 2, s.PropsLoaded)

	f.svc.Tick(time.Now())
	assert.Empty(t, f.svc.Scanner().Current())
}

func TestSessionMetadata_ReachesJournal(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "propsList.xml")
	require.NoError(t, os.WriteFile(path, []byte(reloadDocument), 0644))

	assert.Equal(t, 2, f.dispatch(t, CmdReload, path))
	f.svc.Tick(time.Now())

	f.dispatcher.Close()
	require.NoError(t, f.backend.EndSession())

	export, err := memory.ReadExport(f.backend.ExportedFilePath())
	require.NoError(t, err)
	assert.Equal(t, f.session.ID(), export.SessionID)
	assert.Equal(t, "Franklin", export.Character)
	assert.Equal(t, path, export.PropsFile)
	assert.Equal(t, 2, export.PropsLoaded)
}

func TestSessionUpdate_WrongPayload(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.updateSession(dispatcher.Event{Command: CmdSessionUpdate, Payload: "nope"})
	assert.ErrorIs(t, err, ErrWrongPayload)
}

func TestReload_MissingFileEmptiesCatalog(t *testing.T) {
	f := newFixture(t, props.NewDefinition("prop_bench_01a", props.ActionSit, nil))

	assert.Equal(t, 0, f.dispatch(t, CmdReload))
	assert.Equal(t, 0, f.catalog.Len())
}

func TestStatus(t *testing.T) {
	f := newFixture(t, props.NewDefinition("prop_bench_01a", props.ActionSit, nil))
	f.svc.Tick(time.Now())

	st, ok := f.dispatch(t, CmdStatus).(monitor.Status)
	require.True(t, ok)
	assert.Equal(t, f.session.ID(), st.SessionID)
	assert.Equal(t, uint64(1), st.Ticks)
	assert.Equal(t, 1, st.PropsLoaded)
	assert.Zero(t, st.PendingWrites)
	assert.False(t, st.Time.IsZero())
}
