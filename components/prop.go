package components

import "github.com/yohamta/donburi"

// PropData marks a level-placed object. ColorLevel is the palette level it
// is drawn with.
type PropData struct {
	Name       string
	ColorLevel int
}

var Prop = donburi.NewComponentType[PropData]()
