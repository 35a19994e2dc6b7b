package scenes

import (
	"fmt"
	"image"

	"github.com/automoto/tiledoor/camera"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/yohamta/donburi"
)

// StageKind selects which of a scene's stage lists a stage belongs to.
type StageKind int

const (
	StageSetup StageKind = iota
	StageUpdate
	StageRender
	StageEvent
	stageKindCount
)

func (k StageKind) String() string {
	switch k {
	case StageSetup:
		return "setup"
	case StageUpdate:
		return "update"
	case StageRender:
		return "render"
	case StageEvent:
		return "event"
	}
	return fmt.Sprintf("StageKind(%d)", int(k))
}

// Stage is one unit of per-scene work.
type Stage interface {
	Run(ctx *Context)
}

// StageFunc adapts a plain function to Stage.
type StageFunc func(ctx *Context)

func (f StageFunc) Run(ctx *Context) { f(ctx) }

// lockIgnorer is implemented by stages that keep running while a transition
// holds the input lock.
type lockIgnorer interface {
	IgnoresInputLock() bool
}

type unlockedStage struct {
	Stage
}

func (unlockedStage) IgnoresInputLock() bool { return true }

// IgnoreInputLock wraps a stage so it runs even while input is locked.
func IgnoreInputLock(s Stage) Stage {
	return unlockedStage{Stage: s}
}

func ignoresInputLock(s Stage) bool {
	li, ok := s.(lockIgnorer)
	return ok && li.IgnoresInputLock()
}

// LockSource reports whether gameplay input is currently locked.
type LockSource interface {
	IsInputLocked() bool
}

// Canvas is the render target handed to render stages. The host passes its
// backend image; render stages type-assert it.
type Canvas interface {
	Bounds() image.Rectangle
}

// Event is a discrete input event dispatched to event stages.
type Event struct {
	Action cfg.ActionID
}

// Context is passed to every stage.
type Context struct {
	World    donburi.World
	Registry *Registry
	Scene    *Scene
	Lock     LockSource

	DT     float64 // seconds, update stages only
	Screen Canvas  // render stages only
	Event  Event   // event stages only
}

// Camera returns the camera of the scene being run.
func (c *Context) Camera() *camera.Camera {
	if c.Scene == nil {
		return nil
	}
	return c.Scene.Camera
}

// InputLocked reports whether a transition currently holds the lock.
func (c *Context) InputLocked() bool {
	return c.Lock != nil && c.Lock.IsInputLocked()
}
