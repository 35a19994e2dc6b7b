package factory

import (
	"github.com/automoto/tiledoor/archetypes"
	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/shared/gamemath"
	"github.com/automoto/tiledoor/shared/leveldata"
	"github.com/automoto/tiledoor/tags"
	"github.com/automoto/tiledoor/transition"
	"github.com/yohamta/donburi"
)

// CreatePlayer spawns the persistent player at (x, y).
func CreatePlayer(world donburi.World, x, y float64) *donburi.Entry {
	player := archetypes.Player.Spawn(world)

	components.Position.SetValue(player, components.PositionData{X: x, Y: y})
	components.Player.SetValue(player, components.PlayerData{
		Speed:   cfg.Player.Speed,
		FacingX: 0,
		FacingY: 1,
	})
	components.Collider.SetValue(player, components.ColliderData{
		OffsetX: cfg.Player.ColliderOffsetX,
		OffsetY: cfg.Player.ColliderOffsetY,
		Width:   cfg.Player.ColliderWidth,
		Height:  cfg.Player.ColliderHeight,
	})

	return player
}

// PlayerRepositioner moves the player and stops it. Transitions use it to
// place the player at a door's destination.
func PlayerRepositioner(world donburi.World) transition.RepositionFunc {
	return func(x, y float64) {
		e, ok := tags.Player.First(world)
		if !ok {
			return
		}
		components.Position.SetValue(e, components.PositionData{X: x, Y: y})
		if e.HasComponent(components.Velocity) {
			components.Velocity.SetValue(e, components.VelocityData{})
		}
	}
}

// SpawnPoint returns where the player enters a level when not coming through
// a door: the level's spawn object, else the first walkable cell.
func SpawnPoint(level *leveldata.Level) (x, y float64) {
	if level.HasSpawn {
		return level.SpawnX, level.SpawnY
	}
	layer := level.Collision()
	if layer == nil {
		return 0, 0
	}
	for i, code := range layer.Cells {
		if code == layer.WalkableCode {
			return gamemath.CellToPixel(i%layer.Width, i/layer.Width, level.TileSize)
		}
	}
	return 0, 0
}
