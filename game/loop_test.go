package game

import (
	"testing"

	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/shared/leveldata"
	"github.com/automoto/tiledoor/systems/factory"
	"github.com/automoto/tiledoor/tags"
	"github.com/automoto/tiledoor/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func openLevel(id string, doors []leveldata.Door, props []leveldata.PropSpawn) *leveldata.Level {
	cells := make([]int, 16)
	for i := range cells {
		cells[i] = 1
	}
	return &leveldata.Level{
		ID: id, GridWidth: 4, GridHeight: 4, TileSize: 8,
		Layers: []leveldata.Layer{
			{Kind: leveldata.LayerCollision, Name: "collision", Collision: &leveldata.CollisionLayer{
				Width: 4, Height: 4, Cells: cells, WalkableCode: 1,
			}},
			{Kind: leveldata.LayerDoors, Name: "doors", Doors: doors},
		},
		Props: props,
	}
}

type harness struct {
	world    donburi.World
	registry *scenes.Registry
	machine  *transition.Machine
	loop     *Loop
	player   donburi.Entity
	held     [cfg.ActionCount]bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	levels := leveldata.NewRegistry()
	levels.MustAdd(
		openLevel("level1",
			[]leveldata.Door{{X: 24, Y: 24, Width: 8, Height: 8, DestinationLevel: "level2", DestinationX: 1, DestinationY: 1}},
			[]leveldata.PropSpawn{{Name: "crate", X: 8, Y: 0, Width: 8, Height: 8}},
		),
		openLevel("level2", nil, nil),
	)

	h := &harness{world: donburi.NewWorld()}
	h.registry = scenes.NewRegistry(h.world)
	factory.RegisterSnapshotComponents(h.registry)
	h.machine = transition.New(h.registry, transition.WithRepositioner(factory.PlayerRepositioner(h.world)))
	factory.CreateLevelScenes(h.registry, levels, h.machine)
	factory.NewTitleScene(h.registry, levels, h.machine, "level1")

	h.player = factory.CreatePlayer(h.world, 0, 0).Entity()
	h.loop = NewLoop(h.registry, h.machine, InputFunc(func(in *components.InputData) {
		in.Current = h.held
	}))
	require.NoError(t, h.registry.SwitchTo("level1", false))
	return h
}

func (h *harness) position() components.PositionData {
	return *components.Position.Get(h.world.Entry(h.player))
}

func (h *harness) setPosition(x, y float64) {
	components.Position.SetValue(h.world.Entry(h.player), components.PositionData{X: x, Y: y})
}

func (h *harness) runUntilIdle(t *testing.T, dt float64) {
	t.Helper()
	for i := 0; i < 1000 && h.machine.IsActive(); i++ {
		h.loop.Update(dt)
	}
	require.False(t, h.machine.IsActive(), "transition never finished")
}

func (h *harness) props() []components.PositionData {
	var out []components.PositionData
	tags.Prop.Each(h.world, func(e *donburi.Entry) {
		out = append(out, *components.Position.Get(e))
	})
	return out
}

func TestTransitionSwitchesActiveScene(t *testing.T) {
	h := newHarness(t)

	require.True(t, h.machine.Start(transition.Request{Scene: "level2", Duration: 1.0}))
	h.loop.Update(0.34)
	h.loop.Update(0.34)
	assert.Equal(t, "level1", h.registry.Active().Name())

	h.loop.Update(0.34)
	assert.Equal(t, transition.WaitOneFrame, h.machine.Phase())
	assert.Equal(t, "level2", h.registry.Active().Name())

	h.loop.Update(0.34)
	assert.Equal(t, transition.FadeIn, h.machine.Phase())
}

func TestDoorTransitionRoundTrip(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, []components.PositionData{{X: 8, Y: 0}}, h.props())

	h.setPosition(24, 24)
	h.loop.Update(1.0 / 60)
	require.True(t, h.machine.IsActive())
	assert.Equal(t, "level2", h.machine.Target())

	h.runUntilIdle(t, 0.1)
	assert.Equal(t, "level2", h.registry.Active().Name())
	assert.Equal(t, components.PositionData{X: 8, Y: 8}, h.position())
	assert.Empty(t, h.props())

	require.True(t, h.machine.Start(transition.Request{Scene: "level1"}))
	h.runUntilIdle(t, 0.1)
	assert.Equal(t, "level1", h.registry.Active().Name())
	assert.Equal(t, []components.PositionData{{X: 8, Y: 0}}, h.props(), "props come back from the snapshot, not setup")
	assert.Equal(t, components.PositionData{X: 8, Y: 8}, h.position())
}

func TestInputLockedDuringTransition(t *testing.T) {
	h := newHarness(t)
	h.setPosition(0, 8)
	h.held[cfg.ActionMoveRight] = true

	require.True(t, h.machine.Start(transition.Request{Duration: 0.5}))
	h.loop.Update(0.1)
	h.loop.Update(0.1)
	assert.Equal(t, components.PositionData{X: 0, Y: 8}, h.position())

	h.runUntilIdle(t, 0.1)
	h.loop.Update(0.1)
	assert.Greater(t, h.position().X, 0.0)
}

func TestBackOpensTitleAndReturns(t *testing.T) {
	h := newHarness(t)

	h.held[cfg.ActionBack] = true
	h.loop.Update(1.0 / 60)
	require.True(t, h.machine.IsActive())
	assert.Equal(t, cfg.TitleScene, h.machine.Target())

	h.held[cfg.ActionBack] = false
	h.runUntilIdle(t, 0.1)
	assert.Equal(t, cfg.TitleScene, h.registry.Active().Name())
	require.NotNil(t, h.registry.Previous())
	assert.Equal(t, "level1", h.registry.Previous().Name())

	h.held[cfg.ActionBack] = true
	h.loop.Update(1.0 / 60)
	assert.Equal(t, "level1", h.registry.Active().Name())
	assert.False(t, h.machine.IsActive())
	assert.Len(t, h.props(), 1)
}

func TestPlayerSurvivesSwitches(t *testing.T) {
	h := newHarness(t)
	h.loop.Update(1.0 / 60)
	h.setPosition(4, 4)

	require.NoError(t, h.registry.SwitchTo("level2", false))
	require.True(t, h.world.Valid(h.player))
	assert.Equal(t, components.PositionData{X: 4, Y: 4}, h.position())

	_, ok := components.Input.First(h.world)
	assert.True(t, ok)
}
