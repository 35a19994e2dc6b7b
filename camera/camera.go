// Package camera implements a viewport whose top-left corner is clamped to
// the pixel bounds of the level it is bound to.
package camera

import "github.com/automoto/tiledoor/shared/leveldata"

type Camera struct {
	x, y         float64
	viewW, viewH float64

	bound          bool
	levelW, levelH float64
}

// New creates an unbound camera with the given viewport size in pixels.
func New(viewW, viewH int) *Camera {
	return &Camera{viewW: float64(viewW), viewH: float64(viewH)}
}

// Bind clamps future positions to the level's pixel bounds and re-clamps
// the current one.
func (c *Camera) Bind(level *leveldata.Level) {
	if level == nil {
		c.Unbind()
		return
	}
	c.bound = true
	c.levelW = float64(level.PixelWidth())
	c.levelH = float64(level.PixelHeight())
	c.SetPosition(c.x, c.y)
}

// Unbind removes the level bounds; positions pass through unclamped.
func (c *Camera) Unbind() {
	c.bound = false
	c.levelW, c.levelH = 0, 0
}

func (c *Camera) Bound() bool {
	return c.bound
}

// SetPosition moves the viewport's top-left corner, clamped to
// [0, levelSize - viewportSize] on each axis. A level smaller than the
// viewport pins that axis to 0.
func (c *Camera) SetPosition(x, y float64) {
	if c.bound {
		x = clamp(x, c.levelW-c.viewW)
		y = clamp(y, c.levelH-c.viewH)
	}
	c.x, c.y = x, y
}

// Position returns the viewport's top-left corner in level pixels.
func (c *Camera) Position() (x, y float64) {
	return c.x, c.y
}

// ViewportSize returns the viewport size in pixels.
func (c *Camera) ViewportSize() (w, h float64) {
	return c.viewW, c.viewH
}

// CenterOn places (x, y) in the middle of the viewport.
func (c *Camera) CenterOn(x, y float64) {
	c.SetPosition(x-c.viewW/2, y-c.viewH/2)
}

// Follow eases the viewport toward being centered on (x, y). A smoothing of
// 1 snaps, values in (0, 1) approach gradually.
func (c *Camera) Follow(x, y, smoothing float64) {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = 1
	}
	tx := x - c.viewW/2
	ty := y - c.viewH/2
	c.SetPosition(c.x+(tx-c.x)*smoothing, c.y+(ty-c.y)*smoothing)
}

// WorldToScreen converts level pixels to viewport pixels.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return x - c.x, y - c.y
}

// ScreenToWorld converts viewport pixels to level pixels.
func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	return x + c.x, y + c.y
}

func clamp(v, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	return v
}
