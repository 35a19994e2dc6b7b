package systems

import (
	"log"
	"math"

	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/shared/gamemath"
	"github.com/automoto/tiledoor/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// LevelSource looks levels up by id. *leveldata.Registry satisfies it.
type LevelSource interface {
	Level(id string) (*leveldata.Level, bool)
}

// IsWalkable reports whether the pixel (px, py) of level may be occupied.
// A nil level or one without a collision layer is walkable everywhere;
// pixels outside the grid never are.
func IsWalkable(level *leveldata.Level, px, py int) bool {
	if level == nil {
		return true
	}
	layer := level.Collision()
	if layer == nil {
		return true
	}
	col, row := gamemath.PixelToCell(px, py, level.TileSize)
	code, ok := layer.Code(col, row)
	if !ok {
		return false
	}
	return code == layer.WalkableCode
}

// Offset is a pixel position relative to a footprint origin.
type Offset struct {
	DX, DY int
}

// AxisResult lists the blocked pixels of a proposed footprint.
type AxisResult struct {
	Collided bool
	Offsets  []Offset
}

// ResolveAxisMovement tests every pixel of the proposed footprint.
func ResolveAxisMovement(level *leveldata.Level, proposed gamemath.Rect) AxisResult {
	var res AxisResult
	x, y, w, h := proposed.PixelBounds()
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if !IsWalkable(level, x+dx, y+dy) {
				res.Offsets = append(res.Offsets, Offset{DX: dx, DY: dy})
			}
		}
	}
	res.Collided = len(res.Offsets) > 0
	return res
}

// FootprintWalkable reports whether every pixel of rect is walkable.
func FootprintWalkable(level *leveldata.Level, rect gamemath.Rect) bool {
	x, y, w, h := rect.PixelBounds()
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if !IsWalkable(level, x+dx, y+dy) {
				return false
			}
		}
	}
	return true
}

// PushVector returns a one pixel push away from a single blocked pixel.
// Corners get fixed directions; anywhere else pushes against the dominant
// velocity axis. Ties count as moving horizontally.
func PushVector(off Offset, rect gamemath.Rect, vx, vy float64) (px, py float64) {
	_, _, w, h := rect.PixelBounds()
	horizontal := math.Abs(vx) >= math.Abs(vy)

	switch {
	case off.DX == 0 && off.DY == 0: // top-left
		if horizontal {
			return 0, 1
		}
		return 1, 0
	case off.DX == w-1 && off.DY == 0: // top-right
		if horizontal {
			return 0, 1
		}
		return -1, 0
	case off.DX == 0 && off.DY == h-1: // bottom-left
		if horizontal {
			return 0, -1
		}
		return -1, 0
	}

	if horizontal {
		return -gamemath.Sign(vx), 0
	}
	return 0, -gamemath.Sign(vy)
}

// Resolution describes what ResolveMovement did.
type Resolution struct {
	// Skipped is set when the current footprint already overlaps blocked
	// terrain and nothing was enforced.
	Skipped       bool
	HorizontalHit bool
	VerticalHit   bool
	DiagonalHit   bool
	Pushed        bool
}

// ResolveMovement constrains a velocity (pixels per second) for one frame of
// dt seconds. The horizontal and vertical sweeps are independent: both start
// from the original velocity and the later one wins when both push.
func ResolveMovement(level *leveldata.Level, rect gamemath.Rect, vx, vy, dt float64) (nvx, nvy float64, res Resolution) {
	nvx, nvy = vx, vy
	if dt <= 0 {
		return nvx, nvy, res
	}
	if !FootprintWalkable(level, rect) {
		res.Skipped = true
		return nvx, nvy, res
	}

	apply := func(axis AxisResult, proposed gamemath.Rect, zero func()) {
		if len(axis.Offsets) == 1 {
			px, py := PushVector(axis.Offsets[0], proposed, vx, vy)
			nvx, nvy = px/dt, py/dt
			res.Pushed = true
			return
		}
		zero()
	}

	horizontal := rect.Translate(vx*dt, 0)
	if h := ResolveAxisMovement(level, horizontal); h.Collided {
		res.HorizontalHit = true
		apply(h, horizontal, func() { nvx = 0 })
	}

	vertical := rect.Translate(0, vy*dt)
	if v := ResolveAxisMovement(level, vertical); v.Collided {
		res.VerticalHit = true
		apply(v, vertical, func() { nvy = 0 })
	}

	if cfg.Collision.DiagonalSweep && !res.HorizontalHit && !res.VerticalHit {
		diagonal := rect.Translate(vx*dt, vy*dt)
		if d := ResolveAxisMovement(level, diagonal); d.Collided {
			res.DiagonalHit = true
			apply(d, diagonal, func() { nvx, nvy = 0, 0 })
		}
	}
	return nvx, nvy, res
}

var movingColliders = donburi.NewQuery(filter.Contains(
	components.Position,
	components.Velocity,
	components.Collider,
))

// UpdateCollisions returns the update stage resolving every moving
// collider's velocity against the active scene's level. It must run before
// UpdateMovement.
func UpdateCollisions(levels LevelSource) scenes.StageFunc {
	warned := make(map[string]bool)
	return func(ctx *scenes.Context) {
		var level *leveldata.Level
		if id := ctx.Scene.Level; id != "" {
			level, _ = levels.Level(id)
		}
		if level == nil {
			if !warned[ctx.Scene.Level] {
				log.Printf("Warning: scene %q has no level %q loaded, collisions disabled", ctx.Scene.Name(), ctx.Scene.Level)
				warned[ctx.Scene.Level] = true
			}
			return
		}

		movingColliders.Each(ctx.World, func(e *donburi.Entry) {
			pos := components.Position.Get(e)
			vel := components.Velocity.Get(e)
			col := components.Collider.Get(e)
			vel.X, vel.Y, _ = ResolveMovement(level, col.Footprint(*pos), vel.X, vel.Y, ctx.DT)
		})
	}
}
