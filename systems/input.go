package systems

import (
	"github.com/automoto/tiledoor/archetypes"
	"github.com/automoto/tiledoor/components"
	"github.com/yohamta/donburi"
)

// GetOrCreateInput returns the input singleton, creating it on first use.
// The singleton is persistent so scene switches never drop it.
func GetOrCreateInput(world donburi.World) *components.InputData {
	if e, ok := components.Input.First(world); ok {
		return components.Input.Get(e)
	}
	e := archetypes.Input.Spawn(world)
	return components.Input.Get(e)
}
