package core

// Action represents a semantic companion action, abstracted from physical key
// presses. Pointer gestures and orientation samples do not go through actions;
// they are delivered to the engine as raw events.
type Action int

const (
	ActionNone      Action = iota
	ActionStartGame        // G - start (or restart) a timed catch session
	ActionEndGame          // E - end the running session early
	ActionThrowOrb         // O - throw an energy orb at the companion
	ActionFeedTreat        // F - drop a treat above the companion
	ActionTiltLeft         // Left arrow / A - simulated device tilt
	ActionTiltRight        // Right arrow / D - simulated device tilt
	ActionTiltLevel        // Down arrow / S - level the simulated device
	ActionShake            // X - simulated device shake
	ActionTap              // Space - tap the companion (twice quickly to spin)
	ActionGrow             // + / wheel up - pinch out
	ActionShrink           // - / wheel down - pinch in
	ActionDrawer           // Tab - toggle the accessory drawer
	ActionBack             // Esc - close drawer / leave
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStartGame:
		return "StartGame"
	case ActionEndGame:
		return "EndGame"
	case ActionThrowOrb:
		return "ThrowOrb"
	case ActionFeedTreat:
		return "FeedTreat"
	case ActionTiltLeft:
		return "TiltLeft"
	case ActionTiltRight:
		return "TiltRight"
	case ActionTiltLevel:
		return "TiltLevel"
	case ActionShake:
		return "Shake"
	case ActionTap:
		return "Tap"
	case ActionGrow:
		return "Grow"
	case ActionShrink:
		return "Shrink"
	case ActionDrawer:
		return "Drawer"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two frames.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
