package scenes

import (
	"fmt"

	"github.com/automoto/tiledoor/camera"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Scene is a named set of stages sharing one camera. Update and render stages
// run through the scene's own ecs scheduler over the shared world; setup and
// event stages are plain lists. Scenes are created through a Registry and
// live for the whole run.
type Scene struct {
	name        string
	ecs         *ecs.ECS
	ctx         *Context
	stages      [stageKindCount][]Stage
	counts      [stageKindCount]int
	initialized bool

	Camera *camera.Camera
	// Level is the id of the level loaded into the scene, empty until a
	// setup stage binds one.
	Level string
	// OnActivate runs after every switch to this scene, once its state has
	// been restored.
	OnActivate func(ctx *Context)
}

func newScene(name string, world donburi.World) *Scene {
	return &Scene{
		name:   name,
		ecs:    ecs.NewECS(world),
		Camera: camera.New(cfg.C.Width, cfg.C.Height),
	}
}

func (s *Scene) Name() string {
	return s.name
}

// ECS returns the scheduler running the scene's update and render stages.
func (s *Scene) ECS() *ecs.ECS {
	return s.ecs
}

// Initialized is false until the scene has been switched to once.
func (s *Scene) Initialized() bool {
	return s.initialized
}

// AddStage registers a stage of the given kind. Stages of a kind run in
// registration order.
func (s *Scene) AddStage(kind StageKind, stage Stage) *Scene {
	if kind < 0 || kind >= stageKindCount {
		panic(fmt.Sprintf("scene %q: invalid stage kind %d", s.name, int(kind)))
	}
	if stage == nil {
		panic(fmt.Sprintf("scene %q: nil %s stage", s.name, kind))
	}

	switch kind {
	case StageUpdate:
		system := s.system(stage)
		if !ignoresInputLock(stage) {
			system = s.withInputLockCheck(system)
		}
		s.ecs.AddSystem(system)
	case StageRender:
		s.ecs.AddRenderer(ecs.LayerDefault, func(_ *ecs.ECS, ctx *Context) {
			stage.Run(ctx)
		})
	default:
		s.stages[kind] = append(s.stages[kind], stage)
	}
	s.counts[kind]++
	return s
}

// AddStageFunc is AddStage for plain functions.
func (s *Scene) AddStageFunc(kind StageKind, fn func(ctx *Context)) *Scene {
	return s.AddStage(kind, StageFunc(fn))
}

// StageCount returns how many stages of a kind are registered.
func (s *Scene) StageCount(kind StageKind) int {
	if kind < 0 || kind >= stageKindCount {
		return 0
	}
	return s.counts[kind]
}

// system adapts a stage to an ecs system run against the context of the
// current update.
func (s *Scene) system(stage Stage) ecs.System {
	return func(*ecs.ECS) {
		stage.Run(s.ctx)
	}
}

// withInputLockCheck wraps a system to skip execution while a transition
// holds the input lock.
func (s *Scene) withInputLockCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if s.ctx.InputLocked() {
			return
		}
		system(e)
	}
}

// Setup runs every setup stage. Setup is never gated by the input lock since
// it runs in the middle of a transition.
func (s *Scene) Setup(ctx *Context) {
	s.run(StageSetup, ctx, false)
}

// Update runs the update systems. Those that honor the input lock are
// skipped while it is held.
func (s *Scene) Update(ctx *Context) {
	ctx.Scene = s
	s.ctx = ctx
	s.ecs.Update()
}

func (s *Scene) Render(ctx *Context) {
	ctx.Scene = s
	s.ecs.Draw(ctx)
}

// HandleEvent dispatches ctx.Event to the event stages, gated like Update.
func (s *Scene) HandleEvent(ctx *Context) {
	s.run(StageEvent, ctx, true)
}

func (s *Scene) run(kind StageKind, ctx *Context, gated bool) {
	ctx.Scene = s
	locked := gated && ctx.InputLocked()
	for _, stage := range s.stages[kind] {
		if locked && !ignoresInputLock(stage) {
			continue
		}
		stage.Run(ctx)
	}
}
