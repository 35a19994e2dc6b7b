package components

import "github.com/yohamta/donburi"

// VelocityData is expressed in pixels per second.
type VelocityData struct {
	X, Y float64
}

var Velocity = donburi.NewComponentType[VelocityData]()
