package systems

import (
	"testing"

	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/shared/gamemath"
	"github.com/automoto/tiledoor/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func gridLevel(id string, w, h, tile int, cells ...int) *leveldata.Level {
	return &leveldata.Level{
		ID:         id,
		GridWidth:  w,
		GridHeight: h,
		TileSize:   tile,
		Layers: []leveldata.Layer{{
			Kind: leveldata.LayerCollision,
			Name: "collision",
			Collision: &leveldata.CollisionLayer{
				Width:        w,
				Height:       h,
				Cells:        cells,
				WalkableCode: 1,
			},
		}},
	}
}

func TestIsWalkable(t *testing.T) {
	level := gridLevel("l", 2, 2, 8, 1, 1, 1, 0)

	tests := []struct {
		name   string
		px, py int
		want   bool
	}{
		{"walkable cell", 1, 1, true},
		{"walkable far edge", 15, 7, true},
		{"blocked cell", 9, 9, false},
		{"left of grid", -1, 4, false},
		{"above grid", 4, -1, false},
		{"right of grid", 16, 4, false},
		{"below grid", 4, 16, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWalkable(level, tt.px, tt.py))
		})
	}
}

func TestIsWalkableWithoutCollisionLayer(t *testing.T) {
	level := &leveldata.Level{ID: "open", GridWidth: 2, GridHeight: 2, TileSize: 8}
	for _, p := range [][2]int{{0, 0}, {-50, 3}, {100, 100}, {15, 15}} {
		assert.True(t, IsWalkable(level, p[0], p[1]))
	}
	assert.True(t, IsWalkable(nil, -1, -1))
}

func TestResolveAxisMovementOffsets(t *testing.T) {
	level := gridLevel("l", 2, 2, 8, 1, 1, 1, 0)

	res := ResolveAxisMovement(level, gamemath.Rect{X: 6, Y: 6, W: 4, H: 4})
	require.True(t, res.Collided)
	assert.Equal(t, []Offset{{2, 2}, {3, 2}, {2, 3}, {3, 3}}, res.Offsets)

	res = ResolveAxisMovement(level, gamemath.Rect{X: 0, Y: 0, W: 4, H: 4})
	assert.False(t, res.Collided)
	assert.Empty(t, res.Offsets)
}

func TestPushVector(t *testing.T) {
	rect := gamemath.Rect{W: 4, H: 4}
	tests := []struct {
		name   string
		off    Offset
		vx, vy float64
		px, py float64
	}{
		{"top-left horizontal", Offset{0, 0}, 10, 0, 0, 1},
		{"top-left vertical", Offset{0, 0}, 0, 10, 1, 0},
		{"top-right horizontal", Offset{3, 0}, 10, 2, 0, 1},
		{"top-right vertical", Offset{3, 0}, 2, -10, -1, 0},
		{"bottom-left horizontal", Offset{0, 3}, -10, 0, 0, -1},
		{"bottom-left vertical", Offset{0, 3}, 0, 10, -1, 0},
		{"edge moving right", Offset{3, 2}, 10, 1, -1, 0},
		{"edge moving up", Offset{2, 0}, 1, -10, 0, 1},
		{"bottom-right moving down", Offset{3, 3}, 0, 10, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, py := PushVector(tt.off, rect, tt.vx, tt.vy)
			assert.Equal(t, tt.px, px)
			assert.Equal(t, tt.py, py)
		})
	}
}

func TestResolveMovementInsideWalkableBlock(t *testing.T) {
	level := gridLevel("block", 3, 3, 8,
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	)
	rect := gamemath.Rect{X: 2, Y: 2, W: 6, H: 6}
	for _, vx := range []float64{-60, -1, 30, 600} {
		nvx, nvy, res := ResolveMovement(level, rect, vx, 0, 1.0/60)
		assert.Equal(t, vx, nvx)
		assert.Zero(t, nvy)
		assert.False(t, res.HorizontalHit)
		assert.False(t, res.VerticalHit)
	}
}

// A 1x1 footprint moving diagonally from (1,1) to (9,9): each single-axis
// sweep lands on a walkable cell, so only the combined sweep sees the wall.
func TestResolveMovementDiagonalCorner(t *testing.T) {
	level := gridLevel("corner", 2, 2, 8, 1, 1, 1, 0)
	rect := gamemath.Rect{X: 1, Y: 1, W: 1, H: 1}
	const dt = 0.5
	vx, vy := 16.0, 16.0

	t.Run("per-axis", func(t *testing.T) {
		nvx, nvy, res := ResolveMovement(level, rect, vx, vy, dt)
		assert.Equal(t, vx, nvx)
		assert.Equal(t, vy, nvy)
		assert.False(t, res.HorizontalHit)
		assert.False(t, res.VerticalHit)
	})

	t.Run("diagonal sweep", func(t *testing.T) {
		prev := cfg.Collision.DiagonalSweep
		cfg.Collision.DiagonalSweep = true
		defer func() { cfg.Collision.DiagonalSweep = prev }()

		nvx, nvy, res := ResolveMovement(level, rect, vx, vy, dt)
		require.True(t, res.DiagonalHit)
		assert.True(t, res.Pushed)
		assert.Equal(t, 0.0, nvx)
		assert.Equal(t, 1/dt, nvy)
	})
}

func TestResolveMovementWallStop(t *testing.T) {
	level := gridLevel("wall", 3, 1, 8, 1, 0, 1)
	rect := gamemath.Rect{X: 1, Y: 1, W: 6, H: 6}

	nvx, nvy, res := ResolveMovement(level, rect, 120, 0, 1.0/60)
	assert.True(t, res.HorizontalHit)
	assert.False(t, res.Pushed)
	assert.Zero(t, nvx)
	assert.Zero(t, nvy)
}

func TestResolveMovementSinglePixelPush(t *testing.T) {
	// 2x2 footprint whose top-right pixel enters the blocked cell when
	// moving right.
	level := gridLevel("push", 2, 2, 8, 1, 0, 1, 1)
	rect := gamemath.Rect{X: 6, Y: 7, W: 2, H: 2}
	const dt = 0.25

	nvx, nvy, res := ResolveMovement(level, rect, 4, 0, dt)
	require.True(t, res.HorizontalHit)
	assert.True(t, res.Pushed)
	assert.Equal(t, 0.0, nvx)
	assert.Equal(t, 4.0, nvy)
}

func TestResolveMovementFractionalFootprint(t *testing.T) {
	level := gridLevel("edge", 2, 1, 8, 1, 0)

	// 1.5..7.5 lies inside the walkable cell; the rightmost touched pixel
	// column is 7.
	rect := gamemath.Rect{X: 1.5, Y: 0, W: 6, H: 4}
	require.True(t, FootprintWalkable(level, rect))

	// Moving 0.8 px reaches 8.3, so column 8 of the blocked cell is touched.
	nvx, nvy, res := ResolveMovement(level, rect, 48, 0, 1.0/60)
	assert.True(t, res.HorizontalHit)
	assert.False(t, res.Pushed)
	assert.Zero(t, nvx)
	assert.Zero(t, nvy)
}

func TestResolveMovementSkipsWhenAlreadyBlocked(t *testing.T) {
	level := gridLevel("stuck", 2, 1, 8, 1, 0)
	rect := gamemath.Rect{X: 6, Y: 0, W: 4, H: 4}

	nvx, nvy, res := ResolveMovement(level, rect, 100, 100, 1.0/60)
	assert.True(t, res.Skipped)
	assert.Equal(t, 100.0, nvx)
	assert.Equal(t, 100.0, nvy)
}

func TestResolveMovementVerticalUsesOriginalVelocity(t *testing.T) {
	// Blocked row below and column to the right: both sweeps stop.
	level := gridLevel("box", 2, 2, 8, 1, 0, 0, 0)
	rect := gamemath.Rect{X: 2, Y: 2, W: 6, H: 6}

	nvx, nvy, res := ResolveMovement(level, rect, 60, 60, 0.1)
	assert.True(t, res.HorizontalHit)
	assert.True(t, res.VerticalHit)
	assert.Zero(t, nvx)
	assert.Zero(t, nvy)
}

func TestUpdateCollisionsStage(t *testing.T) {
	level := gridLevel("wall", 3, 1, 8, 1, 0, 1)
	levels := leveldata.NewRegistry()
	levels.MustAdd(level)

	world := donburi.NewWorld()
	registry := scenes.NewRegistry(world)
	scene := registry.MustCreateScene("wall")
	scene.AddStageFunc(scenes.StageSetup, func(ctx *scenes.Context) { ctx.Scene.Level = "wall" })
	scene.AddStage(scenes.StageUpdate, UpdateCollisions(levels))
	scene.AddStageFunc(scenes.StageUpdate, UpdateMovement)
	require.NoError(t, registry.SwitchTo("wall", false))

	e := world.Entry(world.Create(components.Position, components.Velocity, components.Collider))
	components.Position.SetValue(e, components.PositionData{X: 1, Y: 1})
	components.Velocity.SetValue(e, components.VelocityData{X: 120})
	components.Collider.SetValue(e, components.ColliderData{Width: 6, Height: 6})

	registry.Update(1.0 / 60)

	assert.Zero(t, components.Velocity.Get(e).X)
	assert.Equal(t, components.PositionData{X: 1, Y: 1}, *components.Position.Get(e))
}

func TestUpdateCollisionsMissingLevel(t *testing.T) {
	world := donburi.NewWorld()
	registry := scenes.NewRegistry(world)
	scene := registry.MustCreateScene("void")
	scene.AddStage(scenes.StageUpdate, UpdateCollisions(leveldata.NewRegistry()))
	scene.AddStageFunc(scenes.StageUpdate, UpdateMovement)
	require.NoError(t, registry.SwitchTo("void", false))

	e := world.Entry(world.Create(components.Position, components.Velocity, components.Collider))
	components.Velocity.SetValue(e, components.VelocityData{X: 60, Y: -60})
	components.Collider.SetValue(e, components.ColliderData{Width: 4, Height: 4})

	registry.Update(0.5)
	assert.Equal(t, components.PositionData{X: 30, Y: -30}, *components.Position.Get(e))
}
