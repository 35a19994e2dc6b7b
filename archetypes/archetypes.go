package archetypes

import (
	"github.com/automoto/tiledoor/components"
	"github.com/automoto/tiledoor/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		tags.Persistent,
		components.Player,
		components.Position,
		components.Velocity,
		components.Collider,
	)
	Prop = newArchetype(
		tags.Prop,
		components.Prop,
		components.Position,
		components.Collider,
	)
	Input = newArchetype(
		tags.Persistent,
		components.Input,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(world donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	types := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	types = append(types, a.components...)
	types = append(types, cs...)
	return world.Entry(world.Create(types...))
}
