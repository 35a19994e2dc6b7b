// Package render draws scenes with ebiten using the four-level palette. The
// transition machine darkens every palette level while a fade runs.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/fonts"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/shared/gamemath"
	"github.com/automoto/tiledoor/systems"
	"github.com/automoto/tiledoor/tags"
	"github.com/automoto/tiledoor/transition"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // font.Face based HUD text
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
)

// Fader is the render-side view of the transition machine.
type Fader interface {
	AdjustedColorLevel(level int) int
	Alpha() float64
	Phase() transition.Phase
}

type Renderer struct {
	levels systems.LevelSource
	fader  Fader
}

func NewRenderer(levels systems.LevelSource, fader Fader) *Renderer {
	return &Renderer{levels: levels, fader: fader}
}

// AddLevelStages registers the level render stages on scene, back to front.
func (r *Renderer) AddLevelStages(scene *scenes.Scene) {
	scene.AddStageFunc(scenes.StageRender, r.DrawLevel)
	scene.AddStageFunc(scenes.StageRender, r.DrawEntities)
	scene.AddStageFunc(scenes.StageRender, r.DrawHUD)
}

// paletteColor maps a palette level through the current fade.
func (r *Renderer) paletteColor(level int) color.RGBA {
	level = r.fader.AdjustedColorLevel(level)
	if level < transition.MinFadeLevel || level > transition.MaxFadeLevel {
		level = transition.MinFadeLevel
	}
	return cfg.Palette.Levels[level]
}

func screenOf(ctx *scenes.Context) (*ebiten.Image, bool) {
	screen, ok := ctx.Screen.(*ebiten.Image)
	return screen, ok && screen != nil
}

// DrawLevel fills the visible collision cells and door regions.
func (r *Renderer) DrawLevel(ctx *scenes.Context) {
	screen, ok := screenOf(ctx)
	if !ok {
		return
	}
	screen.Fill(r.paletteColor(transition.MinFadeLevel))

	level, ok := r.levels.Level(ctx.Scene.Level)
	if !ok {
		return
	}
	cam := ctx.Camera()
	camX, camY := cam.Position()
	viewW, viewH := cam.ViewportSize()
	ts := level.TileSize

	// Visible cell range
	col0, row0 := gamemath.PixelToCell(int(math.Floor(camX)), int(math.Floor(camY)), ts)
	col1, row1 := gamemath.PixelToCell(int(math.Ceil(camX+viewW)), int(math.Ceil(camY+viewH)), ts)

	walkable := r.paletteColor(cfg.Palette.Walkable)
	blocked := r.paletteColor(cfg.Palette.Blocked)
	for row := max(0, row0); row <= min(level.GridHeight-1, row1); row++ {
		for col := max(0, col0); col <= min(level.GridWidth-1, col1); col++ {
			px, py := gamemath.CellToPixel(col, row, ts)
			c := walkable
			if !systems.IsWalkable(level, int(px), int(py)) {
				c = blocked
			}
			sx, sy := cam.WorldToScreen(px, py)
			vector.FillRect(screen, float32(sx), float32(sy), float32(ts), float32(ts), c, false)
		}
	}

	door := r.paletteColor(cfg.Palette.Door)
	for _, d := range level.Doors() {
		sx, sy := cam.WorldToScreen(d.X, d.Y)
		vector.FillRect(screen, float32(sx), float32(sy), float32(d.Width), float32(d.Height), door, false)
	}
}

// DrawEntities draws props then the player as footprint rectangles.
func (r *Renderer) DrawEntities(ctx *scenes.Context) {
	screen, ok := screenOf(ctx)
	if !ok {
		return
	}
	cam := ctx.Camera()

	draw := func(e *donburi.Entry, level int) {
		if !e.HasComponent(components.Position) || !e.HasComponent(components.Collider) {
			return
		}
		fp := components.Collider.Get(e).Footprint(*components.Position.Get(e))
		sx, sy := cam.WorldToScreen(fp.X, fp.Y)
		vector.FillRect(screen, float32(sx), float32(sy), float32(fp.W), float32(fp.H), r.paletteColor(level), false)
	}

	tags.Prop.Each(ctx.World, func(e *donburi.Entry) {
		level := cfg.Palette.Prop
		if e.HasComponent(components.Prop) {
			level = components.Prop.Get(e).ColorLevel
		}
		draw(e, level)
	})
	tags.Player.Each(ctx.World, func(e *donburi.Entry) {
		draw(e, cfg.Palette.Player)
	})
}

// DrawHUD shows the level id and transition phase in debug mode.
func (r *Renderer) DrawHUD(ctx *scenes.Context) {
	if !cfg.Debug.ShowHUD || !fonts.Loaded(fonts.HUD) {
		return
	}
	screen, ok := screenOf(ctx)
	if !ok {
		return
	}
	msg := fmt.Sprintf("%s  %s", ctx.Scene.Level, r.fader.Phase())
	level, hasLevel := r.levels.Level(ctx.Scene.Level)
	if fp, ok := systems.PlayerFootprint(ctx.World); ok && hasLevel {
		col, row := gamemath.PixelToCell(int(fp.X), int(fp.Y), level.TileSize)
		msg += fmt.Sprintf("  %d,%d", col, row)
	}
	text.Draw(screen, msg, fonts.HUD.Get(), 2, 10, r.paletteColor(cfg.Palette.Player))
}

// DrawFade darkens the whole screen by the fade alpha. Scenes that are not
// drawn from the palette use it instead of AdjustedColorLevel.
func (r *Renderer) DrawFade(ctx *scenes.Context) {
	screen, ok := screenOf(ctx)
	if !ok {
		return
	}
	a := r.fader.Alpha()
	if a <= 0 {
		return
	}
	b := screen.Bounds()
	c := color.RGBA{A: uint8(math.Round(a * 255))}
	vector.FillRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), c, false)
}
