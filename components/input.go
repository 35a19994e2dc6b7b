package components

import (
	cfg "github.com/automoto/tiledoor/config"
	"github.com/yohamta/donburi"
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed/JustReleased are computed on-demand by comparing frames.
type InputData struct {
	Current  [cfg.ActionCount]bool // Current frame's Pressed state
	Previous [cfg.ActionCount]bool // Previous frame's Pressed state
}

// Action returns the temporal state of an action.
func (d *InputData) Action(id cfg.ActionID) ActionState {
	if id < 0 || id >= cfg.ActionCount {
		return ActionState{}
	}
	cur, prev := d.Current[id], d.Previous[id]
	return ActionState{
		Pressed:      cur,
		JustPressed:  cur && !prev,
		JustReleased: !cur && prev,
	}
}

// Advance swaps buffers: current becomes previous, then current is cleared.
func (d *InputData) Advance() {
	d.Previous = d.Current
	d.Current = [cfg.ActionCount]bool{}
}

var Input = donburi.NewComponentType[InputData]()
