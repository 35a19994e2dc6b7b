package factory

import (
	"github.com/automoto/tiledoor/archetypes"
	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/shared/leveldata"
	"github.com/yohamta/donburi"
)

// CreateProp spawns a level-placed prop. Props belong to the scene that
// spawned them and are snapshotted with it.
func CreateProp(world donburi.World, spawn leveldata.PropSpawn) *donburi.Entry {
	prop := archetypes.Prop.Spawn(world)

	components.Position.SetValue(prop, components.PositionData{X: spawn.X, Y: spawn.Y})
	components.Collider.SetValue(prop, components.ColliderData{
		Width:  spawn.Width,
		Height: spawn.Height,
	})
	components.Prop.SetValue(prop, components.PropData{
		Name:       spawn.Name,
		ColorLevel: cfg.Palette.Prop,
	})

	return prop
}
