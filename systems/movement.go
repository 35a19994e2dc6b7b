package systems

import (
	"github.com/automoto/tiledoor/components"
	"github.com/automoto/tiledoor/scenes"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var movers = donburi.NewQuery(filter.Contains(components.Position, components.Velocity))

// UpdateMovement integrates velocity into position. It runs after
// UpdateCollisions has constrained the velocity for this frame.
func UpdateMovement(ctx *scenes.Context) {
	movers.Each(ctx.World, func(e *donburi.Entry) {
		pos := components.Position.Get(e)
		vel := components.Velocity.Get(e)
		pos.X += vel.X * ctx.DT
		pos.Y += vel.Y * ctx.DT
	})
}
