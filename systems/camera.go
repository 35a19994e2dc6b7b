package systems

import (
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
)

// UpdateCamera eases the scene camera toward the player. Register it with
// scenes.IgnoreInputLock so the view keeps tracking during fades.
func UpdateCamera(ctx *scenes.Context) {
	cam := ctx.Camera()
	if cam == nil {
		return
	}
	fp, ok := PlayerFootprint(ctx.World)
	if !ok {
		return // no player, keep the camera where it is
	}
	cam.Follow(fp.X+fp.W/2, fp.Y+fp.H/2, cfg.Camera.FollowSmoothing)
}

// SnapCamera centers the scene camera on the player without smoothing.
func SnapCamera(ctx *scenes.Context) {
	cam := ctx.Camera()
	if cam == nil {
		return
	}
	if fp, ok := PlayerFootprint(ctx.World); ok {
		cam.CenterOn(fp.X+fp.W/2, fp.Y+fp.H/2)
	}
}
