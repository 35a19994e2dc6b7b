package factory

import (
	"fmt"
	"log"

	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/shared/leveldata"
	"github.com/automoto/tiledoor/systems"
	"github.com/automoto/tiledoor/tags"
	"github.com/automoto/tiledoor/transition"
)

// RegisterSnapshotComponents makes every scene-owned component survive a
// round trip through the scene registry.
func RegisterSnapshotComponents(registry *scenes.Registry) {
	scenes.RegisterComponent(registry, tags.Prop)
	scenes.RegisterComponent(registry, components.Prop)
	scenes.RegisterComponent(registry, components.Position)
	scenes.RegisterComponent(registry, components.Velocity)
	scenes.RegisterComponent(registry, components.Collider)
}

// CreateLevelScenes registers one scene per level, named by the level id.
func CreateLevelScenes(registry *scenes.Registry, levels *leveldata.Registry, machine systems.TransitionStarter) []*scenes.Scene {
	collisions := systems.UpdateCollisions(levels)
	doors := systems.NewDoorTrigger(levels, machine)

	out := make([]*scenes.Scene, 0, levels.Len())
	for _, id := range levels.IDs() {
		level, _ := levels.Level(id)
		out = append(out, NewLevelScene(registry, level, collisions, doors, machine))
	}
	return out
}

// NewLevelScene registers the scene playing level. Props are spawned on the
// first visit only; later visits get them back from the scene snapshot.
func NewLevelScene(registry *scenes.Registry, level *leveldata.Level, collisions scenes.Stage, doors *systems.DoorTrigger, machine systems.TransitionStarter) *scenes.Scene {
	if level == nil {
		panic("NewLevelScene: nil level")
	}
	scene := registry.MustCreateScene(level.ID)

	scene.AddStageFunc(scenes.StageSetup, func(ctx *scenes.Context) {
		ctx.Scene.Level = level.ID
		ctx.Camera().Bind(level)
		if ctx.Scene.Initialized() {
			return
		}
		for _, p := range level.Props {
			CreateProp(ctx.World, p)
		}
	})

	// Order matters: input, then collision, then integration, then doors
	// against the settled position.
	scene.AddStageFunc(scenes.StageUpdate, systems.UpdatePlayer)
	scene.AddStage(scenes.StageUpdate, collisions)
	scene.AddStageFunc(scenes.StageUpdate, systems.UpdateMovement)
	scene.AddStage(scenes.StageUpdate, doors)
	scene.AddStage(scenes.StageUpdate, scenes.IgnoreInputLock(scenes.StageFunc(systems.UpdateCamera)))

	scene.AddStageFunc(scenes.StageEvent, func(ctx *scenes.Context) {
		switch ctx.Event.Action {
		case cfg.ActionBack:
			machine.Start(transition.Request{
				Scene:           cfg.TitleScene,
				PreserveCurrent: true,
				Duration:        cfg.Transition.MenuDuration,
			})
		case cfg.ActionDebug:
			cfg.Debug.ShowHUD = !cfg.Debug.ShowHUD
		}
	})

	scene.OnActivate = systems.SnapCamera
	return scene
}

// NewTitleScene registers the title scene. Selecting starts or resumes the
// game; going back returns instantly to the level that opened the title.
func NewTitleScene(registry *scenes.Registry, levels *leveldata.Registry, machine systems.TransitionStarter, firstLevel string) *scenes.Scene {
	scene := registry.MustCreateScene(cfg.TitleScene)
	scene.AddStageFunc(scenes.StageEvent, func(ctx *scenes.Context) {
		switch ctx.Event.Action {
		case cfg.ActionMenuSelect:
			StartGame(ctx.Registry, levels, machine, firstLevel)
		case cfg.ActionBack:
			if ctx.Registry.Previous() == nil {
				return
			}
			if err := ctx.Registry.ReturnToPrevious(); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	})
	return scene
}

// StartGame fades from the title into the game. It resumes the previous
// level when there is one and otherwise enters firstLevel at its spawn
// point. It reports whether a transition was started.
func StartGame(registry *scenes.Registry, levels *leveldata.Registry, machine systems.TransitionStarter, firstLevel string) bool {
	if prev := registry.Previous(); prev != nil && prev.Level != "" {
		return machine.Start(transition.Request{
			Scene:    prev.Name(),
			Duration: cfg.Transition.MenuDuration,
		})
	}

	level, ok := levels.Level(firstLevel)
	if !ok || !registry.Has(firstLevel) {
		panic(fmt.Sprintf("StartGame: no level scene %q", firstLevel))
	}
	x, y := SpawnPoint(level)
	return machine.Start(transition.Request{
		Scene:      firstLevel,
		Duration:   cfg.Transition.MenuDuration,
		Reposition: &transition.Point{X: x, Y: y},
	})
}
