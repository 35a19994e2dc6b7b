package leveldata

import (
	"errors"
	"fmt"
)

var ErrDuplicateLevel = errors.New("duplicate level")

// Registry holds every loaded level indexed by identifier.
type Registry struct {
	levels map[string]*Level
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{levels: make(map[string]*Level)}
}

// Add validates and registers a level. Levels are immutable afterwards.
func (r *Registry) Add(level *Level) error {
	if level == nil {
		return errors.New("nil level")
	}
	if err := level.Validate(); err != nil {
		return err
	}
	if _, ok := r.levels[level.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLevel, level.ID)
	}
	r.levels[level.ID] = level
	r.order = append(r.order, level.ID)
	return nil
}

// MustAdd is Add for startup code where a bad level is a programmer error.
func (r *Registry) MustAdd(levels ...*Level) {
	for _, l := range levels {
		if err := r.Add(l); err != nil {
			panic(fmt.Sprintf("register level: %v", err))
		}
	}
}

// Level looks a level up by identifier.
func (r *Registry) Level(id string) (*Level, bool) {
	l, ok := r.levels[id]
	return l, ok
}

// IDs returns level identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	return len(r.order)
}
