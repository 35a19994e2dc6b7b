package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Prop   = donburi.NewTag().SetName("Prop")

	// Persistent entities survive scene switches untouched: they are never
	// captured into a scene snapshot, destroyed or recreated.
	Persistent = donburi.NewTag().SetName("Persistent")
)

// Resolv tags for the door broadphase
const (
	ResolvDoor  = "door"
	ResolvProbe = "probe"
)
