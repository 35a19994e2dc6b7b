package scenes

import (
	"github.com/automoto/tiledoor/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Cloner is implemented by component data holding references (slices,
// maps, pointers) that must be deep-copied into a snapshot.
type Cloner[T any] interface {
	Clone() T
}

type componentCodec struct {
	component donburi.IComponentType
	capture   func(entry *donburi.Entry) any
	restore   func(entry *donburi.Entry, v any)
}

// RegisterComponent makes a component part of scene snapshots. Components
// that are not registered are dropped when their entity's scene is left.
// Registering the same component twice is a no-op.
func RegisterComponent[T any](r *Registry, ct *donburi.ComponentType[T]) {
	for _, c := range r.codecs {
		if c.component == donburi.IComponentType(ct) {
			return
		}
	}
	r.codecs = append(r.codecs, componentCodec{
		component: ct,
		capture: func(entry *donburi.Entry) any {
			return clone(*ct.Get(entry))
		},
		restore: func(entry *donburi.Entry, v any) {
			ct.SetValue(entry, clone(v.(T)))
		},
	})
}

func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(&v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

type entitySnapshot struct {
	codecs []int
	values []any
}

type savedState struct {
	cameraX, cameraY float64
	entities         []entitySnapshot
	initialized      bool
}

var transientQuery = donburi.NewQuery(filter.Not(filter.Contains(tags.Persistent)))

func (r *Registry) transientEntities() []donburi.Entity {
	var out []donburi.Entity
	transientQuery.Each(r.world, func(entry *donburi.Entry) {
		out = append(out, entry.Entity())
	})
	return out
}

func (r *Registry) captureEntities() []entitySnapshot {
	var out []entitySnapshot
	transientQuery.Each(r.world, func(entry *donburi.Entry) {
		var snap entitySnapshot
		for i, c := range r.codecs {
			if !entry.HasComponent(c.component) {
				continue
			}
			snap.codecs = append(snap.codecs, i)
			snap.values = append(snap.values, c.capture(entry))
		}
		if len(snap.codecs) > 0 {
			out = append(out, snap)
		}
	})
	return out
}

func (r *Registry) restoreEntities(snaps []entitySnapshot) {
	for _, snap := range snaps {
		types := make([]donburi.IComponentType, len(snap.codecs))
		for i, ci := range snap.codecs {
			types[i] = r.codecs[ci].component
		}
		entry := r.world.Entry(r.world.Create(types...))
		for i, ci := range snap.codecs {
			r.codecs[ci].restore(entry, snap.values[i])
		}
	}
}

func (r *Registry) destroy(entities []donburi.Entity) {
	for _, e := range entities {
		if r.world.Valid(e) {
			r.world.Remove(e)
		}
	}
}
