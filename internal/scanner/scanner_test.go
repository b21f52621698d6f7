package scanner

import (
	"errors"
	"testing"

	"github.com/interactiv/extension/internal/cache"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/pkg/core"
	"github.com/interactiv/extension/pkg/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placedObject struct {
	handle int
	model  uint32
	pos    core.Vector3
}

// fakeWorld answers scanner queries from a list of placed objects.
type fakeWorld struct {
	player    core.Vector3
	situation core.Situation
	objects   []placedObject
	released  map[props.Control]bool

	helpTexts []string
	queries   []uint32
}

func (w *fakeWorld) PlayerPosition() core.Vector3             { return w.player }
func (w *fakeWorld) Situation() core.Situation                { return w.situation }
func (w *fakeWorld) DisplayHelpText(text string)              { w.helpTexts = append(w.helpTexts, text) }
func (w *fakeWorld) ControlJustReleased(c props.Control) bool { return w.released[c] }

func (w *fakeWorld) ClosestObject(pos core.Vector3, radius float32, model uint32) (int, bool) {
	w.queries = append(w.queries, model)
	best, bestDist := 0, radius
	found := false
	for _, o := range w.objects {
		if o.model != model {
			continue
		}
		if d := o.pos.DistanceTo(pos); d <= bestDist {
			best, bestDist, found = o.handle, d, true
		}
	}
	return best, found
}

type recordingDispatcher struct {
	matches []Match
	err     error
}

func (d *recordingDispatcher) Execute(m Match) error {
	d.matches = append(d.matches, m)
	return d.err
}

func chairDefinition(access props.Accessibility) props.Definition {
	return props.NewDefinition("prop_table_03_chr", props.ActionSit,
		[]core.Vector3{{X: 0, Y: 0, Z: -0.5}},
		props.WithControl(props.ControlContext),
		props.WithAccessibility(access),
		props.WithHelpText("Press to sit"),
	)
}

func chairWorld() *fakeWorld {
	return &fakeWorld{
		player:   core.Vector3{X: 10, Y: 10, Z: 30},
		objects:  []placedObject{{handle: 77, model: native.Joaat("prop_table_03_chr"), pos: core.Vector3{X: 11, Y: 10, Z: 30}}},
		released: map[props.Control]bool{},
	}
}

func TestScanner_ChairShowsHelpEveryTickAndDispatchesOnce(t *testing.T) {
	world := chairWorld()
	disp := &recordingDispatcher{}
	s := New(props.NewCatalog([]props.Definition{chairDefinition(props.AccessAll)}), world, disp)

	for tick := uint64(1); tick <= 3; tick++ {
		assert.Equal(t, StatePresenting, s.Tick(tick))
	}
	assert.Equal(t, []string{"Press to sit", "Press to sit", "Press to sit"}, world.helpTexts)
	assert.Empty(t, disp.matches)
	assert.Equal(t, "prop_table_03_chr", s.Current())

	world.released[props.ControlContext] = true
	assert.Equal(t, StateIdleAfterMatch, s.Tick(4))
	require.Len(t, disp.matches, 1)

	m := disp.matches[0]
	assert.Equal(t, 77, m.Object)
	assert.Equal(t, uint64(4), m.Tick)
	assert.Equal(t, props.ActionSit, m.Definition.Action())
	assert.Equal(t, world.player, m.Position)
	assert.Len(t, world.helpTexts, 4)
}

func TestScanner_LeavingRangeStopsHelpText(t *testing.T) {
	world := chairWorld()
	s := New(props.NewCatalog([]props.Definition{chairDefinition(props.AccessAll)}), world, &recordingDispatcher{})

	s.Tick(1)
	world.player = core.Vector3{X: 20, Y: 10, Z: 30}
	assert.Equal(t, StateScanning, s.Tick(2))
	assert.Len(t, world.helpTexts, 1)
	assert.Empty(t, s.Current())
}

func TestScanner_InBoatPropIgnoredOnFoot(t *testing.T) {
	world := chairWorld()
	world.released[props.ControlContext] = true
	disp := &recordingDispatcher{}
	s := New(props.NewCatalog([]props.Definition{chairDefinition(props.AccessInBoat)}), world, disp)

	for tick := uint64(1); tick <= 5; tick++ {
		assert.Equal(t, StateScanning, s.Tick(tick))
	}
	assert.Empty(t, world.helpTexts)
	assert.Empty(t, disp.matches)
}

func TestScanner_InaccessiblePropFallsThroughToNext(t *testing.T) {
	world := chairWorld()
	world.objects = append(world.objects, placedObject{
		handle: 88, model: native.Joaat("prop_vend_coffe_01"), pos: core.Vector3{X: 10, Y: 11, Z: 30},
	})
	world.released[props.ControlContext] = true

	coffee := props.NewDefinition("prop_vend_coffe_01", props.ActionDrinkCoffee, nil,
		props.WithAccessibility(props.AccessOnFoot),
		props.WithHelpText("Buy a coffee"))

	disp := &recordingDispatcher{}
	s := New(props.NewCatalog([]props.Definition{chairDefinition(props.AccessInBoat), coffee}), world, disp)

	assert.Equal(t, StateIdleAfterMatch, s.Tick(1))
	assert.Equal(t, []string{"Buy a coffee"}, world.helpTexts)
	require.Len(t, disp.matches, 1)
	assert.Equal(t, 88, disp.matches[0].Object)
}

func TestScanner_FirstUsablePropWins(t *testing.T) {
	world := chairWorld()
	world.objects = append(world.objects, placedObject{
		handle: 88, model: native.Joaat("prop_vend_coffe_01"), pos: core.Vector3{X: 10, Y: 11, Z: 30},
	})

	coffee := props.NewDefinition("prop_vend_coffe_01", props.ActionDrinkCoffee, nil,
		props.WithHelpText("Buy a coffee"))
	s := New(props.NewCatalog([]props.Definition{chairDefinition(props.AccessAll), coffee}), world, &recordingDispatcher{})

	s.Tick(1)
	assert.Equal(t, []string{"Press to sit"}, world.helpTexts)
	assert.Equal(t, []uint32{native.Joaat("prop_table_03_chr")}, world.queries, "later props are not queried")
}

func TestScanner_NotFoundPropsAreSkipped(t *testing.T) {
	world := chairWorld()
	missing := props.NewDefinition("prop_bench_01a", props.ActionSit, nil, props.WithHelpText("Bench"))
	s := New(props.NewCatalog([]props.Definition{missing, chairDefinition(props.AccessAll)}), world, &recordingDispatcher{})

	assert.Equal(t, StatePresenting, s.Tick(1))
	assert.Equal(t, []string{"Press to sit"}, world.helpTexts)
	assert.Len(t, world.queries, 2)
}

func TestScanner_EmptyHelpTextIsNotDisplayed(t *testing.T) {
	world := chairWorld()
	def := props.NewDefinition("prop_table_03_chr", props.ActionSit, nil)
	s := New(props.NewCatalog([]props.Definition{def}), world, &recordingDispatcher{})

	assert.Equal(t, StatePresenting, s.Tick(1))
	assert.Empty(t, world.helpTexts)
}

func TestScanner_UsesPropControl(t *testing.T) {
	world := chairWorld()
	world.released[props.ControlContext] = true
	def := props.NewDefinition("prop_table_03_chr", props.ActionSit, nil, props.WithControl(props.ControlJump))
	disp := &recordingDispatcher{}
	s := New(props.NewCatalog([]props.Definition{def}), world, disp)

	assert.Equal(t, StatePresenting, s.Tick(1))
	world.released[props.ControlJump] = true
	assert.Equal(t, StateIdleAfterMatch, s.Tick(2))
	assert.Len(t, disp.matches, 1)
}

func TestScanner_DispatchErrorDoesNotStopScanning(t *testing.T) {
	world := chairWorld()
	world.released[props.ControlContext] = true
	disp := &recordingDispatcher{err: errors.New("queue full")}
	s := New(props.NewCatalog([]props.Definition{chairDefinition(props.AccessAll)}), world, disp)

	assert.Equal(t, StateIdleAfterMatch, s.Tick(1))
	assert.Equal(t, StateIdleAfterMatch, s.Tick(2))
	assert.Len(t, disp.matches, 2)
}

func TestScanner_Radius(t *testing.T) {
	world := chairWorld()
	world.objects[0].pos = core.Vector3{X: 12, Y: 10, Z: 30}
	catalog := props.NewCatalog([]props.Definition{chairDefinition(props.AccessAll)})

	assert.Equal(t, StateScanning, New(catalog, world, &recordingDispatcher{}).Tick(1))

	wide := New(catalog, world, &recordingDispatcher{}, WithRadius(2.5))
	assert.Equal(t, float32(2.5), wide.Radius())
	assert.Equal(t, StatePresenting, wide.Tick(1))

	assert.Equal(t, DefaultRadius, New(catalog, world, &recordingDispatcher{}, WithRadius(-1)).Radius())
}

func TestScanner_CatalogReplaceTakesEffect(t *testing.T) {
	world := chairWorld()
	catalog := props.NewCatalog(nil)
	models := cache.NewModelCache()
	s := New(catalog, world, &recordingDispatcher{}, WithModelCache(models))

	assert.Equal(t, StateScanning, s.Tick(1))
	assert.Empty(t, world.queries, "no props, no queries")

	catalog.Replace([]props.Definition{chairDefinition(props.AccessAll)})
	assert.Equal(t, StatePresenting, s.Tick(2))
	assert.Equal(t, 1, models.Len())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Scanning", StateScanning.String())
	assert.Equal(t, "Presenting", StatePresenting.String())
	assert.Equal(t, "IdleAfterMatch", StateIdleAfterMatch.String())
	assert.Equal(t, "State(9)", State(9).String())
}
