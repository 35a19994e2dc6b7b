package components

import "github.com/yohamta/donburi"

// PositionData is the entity origin in level pixels.
type PositionData struct {
	X, Y float64
}

var Position = donburi.NewComponentType[PositionData]()
