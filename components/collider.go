package components

import (
	"github.com/automoto/tiledoor/shared/gamemath"
	"github.com/yohamta/donburi"
)

// ColliderData describes the entity footprint relative to its position.
type ColliderData struct {
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// Footprint returns the pixel rectangle the entity occupies at pos.
func (c ColliderData) Footprint(pos PositionData) gamemath.Rect {
	return gamemath.Rect{
		X: pos.X + c.OffsetX,
		Y: pos.Y + c.OffsetY,
		W: c.Width,
		H: c.Height,
	}
}

var Collider = donburi.NewComponentType[ColliderData]()
