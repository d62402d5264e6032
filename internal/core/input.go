package core

// Action is a semantic input event, abstracted from physical key presses.
// The platform maps keys to actions; the game session consumes them.
type Action int

const (
	ActionNone           Action = iota
	ActionUp                    // W, Up arrow
	ActionRight                 // D, Right arrow
	ActionDown                  // S, Down arrow
	ActionLeft                  // A, Left arrow
	ActionRestart               // R
	ActionKeepPlaying           // C - continue after reaching the target
	ActionToggleStrategy        // T - cycle the active strategy
	ActionAutoSolve             // Space - start/stop autoplay
	ActionHint                  // H - ask the active strategy for a move
	ActionBack                  // B, Escape
	ActionQuit                  // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRestart:
		return "Restart"
	case ActionKeepPlaying:
		return "KeepPlaying"
	case ActionToggleStrategy:
		return "ToggleStrategy"
	case ActionAutoSolve:
		return "AutoSolve"
	case ActionHint:
		return "Hint"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action is one of the four move directions.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionLeft
}
