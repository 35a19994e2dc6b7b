package scenes

import (
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/tiledoor/tags"
	"github.com/yohamta/donburi"
)

var (
	ErrDuplicateScene  = errors.New("scene already registered")
	ErrUnknownScene    = errors.New("unknown scene")
	ErrNoPreviousScene = errors.New("no previous scene")
)

// Registry owns every scene, tracks the active and previous scene, and keeps
// the saved state of scenes that have been left.
type Registry struct {
	world  donburi.World
	lock   LockSource
	scenes map[string]*Scene
	saved  map[string]*savedState
	codecs []componentCodec

	active   *Scene
	previous *Scene
}

func NewRegistry(world donburi.World) *Registry {
	return &Registry{
		world:  world,
		scenes: make(map[string]*Scene),
		saved:  make(map[string]*savedState),
	}
}

func (r *Registry) World() donburi.World {
	return r.world
}

// SetLockSource sets what contexts built by the registry report as the input
// lock.
func (r *Registry) SetLockSource(lock LockSource) {
	r.lock = lock
}

// Context returns a fresh stage context for the active scene.
func (r *Registry) Context() *Context {
	return &Context{
		World:    r.world,
		Registry: r,
		Scene:    r.active,
		Lock:     r.lock,
	}
}

// CreateScene registers an empty scene with a camera sized to the viewport.
func (r *Registry) CreateScene(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("create scene: empty name: %w", ErrDuplicateScene)
	}
	if _, ok := r.scenes[name]; ok {
		return nil, fmt.Errorf("create scene %q: %w", name, ErrDuplicateScene)
	}
	s := newScene(name, r.world)
	r.scenes[name] = s
	return s, nil
}

func (r *Registry) MustCreateScene(name string) *Scene {
	s, err := r.CreateScene(name)
	if err != nil {
		panic(err.Error())
	}
	return s
}

func (r *Registry) Scene(name string) (*Scene, bool) {
	s, ok := r.scenes[name]
	return s, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.scenes[name]
	return ok
}

// Names returns the registered scene names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Active returns the active scene, nil before the first switch.
func (r *Registry) Active() *Scene {
	return r.active
}

// Previous returns the scene last left with preserveCurrent set.
func (r *Registry) Previous() *Scene {
	return r.previous
}

// SwitchTo makes the named scene active. The outgoing scene's non-persistent
// entities and camera position are saved; the incoming scene runs its setup
// stages and then gets its own saved state back. On a first visit there is
// nothing to restore: the outgoing entities are dropped and whatever setup
// spawned is kept.
func (r *Registry) SwitchTo(name string, preserveCurrent bool) error {
	next, ok := r.scenes[name]
	if !ok {
		return fmt.Errorf("switch to %q: %w", name, ErrUnknownScene)
	}

	if cur := r.active; cur != nil {
		x, y := cur.Camera.Position()
		r.saved[cur.name] = &savedState{
			cameraX:     x,
			cameraY:     y,
			entities:    r.captureEntities(),
			initialized: cur.initialized,
		}
		if preserveCurrent {
			r.previous = cur
		}
	}

	outgoing := r.transientEntities()
	r.active = next

	ctx := r.Context()
	next.Setup(ctx)

	if state, ok := r.saved[name]; ok {
		r.destroy(r.transientEntities())
		r.restoreEntities(state.entities)
		next.Camera.SetPosition(state.cameraX, state.cameraY)
	} else {
		r.destroy(outgoing)
	}

	next.initialized = true
	if next.OnActivate != nil {
		next.OnActivate(ctx)
	}
	return nil
}

// MustSwitchTo panics on an unknown scene.
func (r *Registry) MustSwitchTo(name string, preserveCurrent bool) {
	if err := r.SwitchTo(name, preserveCurrent); err != nil {
		panic(err.Error())
	}
}

// ReturnToPrevious switches back to the previous scene and forgets it.
func (r *Registry) ReturnToPrevious() error {
	prev := r.previous
	if prev == nil {
		return ErrNoPreviousScene
	}
	r.previous = nil
	return r.SwitchTo(prev.name, false)
}

// MarkPersistent excludes an entity from snapshots so it survives every
// switch untouched.
func (r *Registry) MarkPersistent(entry *donburi.Entry) {
	if !entry.HasComponent(tags.Persistent) {
		entry.AddComponent(tags.Persistent)
	}
}

func (r *Registry) IsPersistent(entry *donburi.Entry) bool {
	return entry.HasComponent(tags.Persistent)
}

// Update runs the active scene's update stages.
func (r *Registry) Update(dt float64) {
	if r.active == nil {
		return
	}
	ctx := r.Context()
	ctx.DT = dt
	r.active.Update(ctx)
}

// HandleEvent dispatches an event to the active scene.
func (r *Registry) HandleEvent(ev Event) {
	if r.active == nil {
		return
	}
	ctx := r.Context()
	ctx.Event = ev
	r.active.HandleEvent(ctx)
}

// Render runs the active scene's render stages.
func (r *Registry) Render(screen Canvas) {
	if r.active == nil {
		return
	}
	ctx := r.Context()
	ctx.Screen = screen
	r.active.Render(ctx)
}
