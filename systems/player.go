package systems

import (
	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/shared/gamemath"
	"github.com/automoto/tiledoor/tags"
	"github.com/yohamta/donburi"
)

// UpdatePlayer turns the held movement actions into player velocity.
func UpdatePlayer(ctx *scenes.Context) {
	input := GetOrCreateInput(ctx.World)

	var dx, dy float64
	if input.Action(cfg.ActionMoveLeft).Pressed {
		dx--
	}
	if input.Action(cfg.ActionMoveRight).Pressed {
		dx++
	}
	if input.Action(cfg.ActionMoveUp).Pressed {
		dy--
	}
	if input.Action(cfg.ActionMoveDown).Pressed {
		dy++
	}
	dx, dy = gamemath.NormalizeDirection(dx, dy)

	tags.Player.Each(ctx.World, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		vel := components.Velocity.Get(e)
		vel.X = dx * player.Speed
		vel.Y = dy * player.Speed
		if dx != 0 || dy != 0 {
			player.FacingX, player.FacingY = dx, dy
		}
	})
}

// PlayerFootprint returns the player's footprint, ok is false when there is
// no player with a collider.
func PlayerFootprint(world donburi.World) (gamemath.Rect, bool) {
	e, ok := tags.Player.First(world)
	if !ok || !e.HasComponent(components.Position) || !e.HasComponent(components.Collider) {
		return gamemath.Rect{}, false
	}
	return components.Collider.Get(e).Footprint(*components.Position.Get(e)), true
}
