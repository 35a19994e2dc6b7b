// Package game drives one frame of the runtime: input, then the transition
// machine, then the active scene.
package game

import (
	"github.com/automoto/tiledoor/components"
	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/systems"
	"github.com/automoto/tiledoor/transition"
)

// InputSource fills the current frame's pressed actions.
type InputSource interface {
	Poll(input *components.InputData)
}

// InputFunc adapts a function to InputSource.
type InputFunc func(input *components.InputData)

func (f InputFunc) Poll(input *components.InputData) { f(input) }

// Loop owns the per-frame order. It is the only caller of Machine.Update.
type Loop struct {
	Registry *scenes.Registry
	Machine  *transition.Machine
	Input    InputSource
}

// NewLoop wires the registry's input lock to machine.
func NewLoop(registry *scenes.Registry, machine *transition.Machine, input InputSource) *Loop {
	registry.SetLockSource(machine)
	return &Loop{
		Registry: registry,
		Machine:  machine,
		Input:    input,
	}
}

// Update advances one frame of dt seconds.
func (l *Loop) Update(dt float64) {
	input := systems.GetOrCreateInput(l.Registry.World())
	input.Advance()
	if l.Input != nil {
		l.Input.Poll(input)
	}

	l.Machine.Update(dt)

	for id := cfg.ActionNone + 1; id < cfg.ActionCount; id++ {
		if input.Action(id).JustPressed {
			l.Registry.HandleEvent(scenes.Event{Action: id})
		}
	}

	l.Registry.Update(dt)
}

// Draw runs the active scene's render stages.
func (l *Loop) Draw(screen scenes.Canvas) {
	l.Registry.Render(screen)
}
