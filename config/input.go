package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionBack
	ActionDebug
	ActionMenuSelect
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:       "none",
	ActionMoveLeft:   "move_left",
	ActionMoveRight:  "move_right",
	ActionMoveUp:     "move_up",
	ActionMoveDown:   "move_down",
	ActionBack:       "back",
	ActionDebug:      "debug",
	ActionMenuSelect: "menu_select",
}

func (a ActionID) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}
