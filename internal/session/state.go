package session

// State is the lifecycle state shown by the UI. Exactly one is active.
type State int

const (
	Idle State = iota
	Processing
	Streaming
	Complete
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Streaming:
		return "streaming"
	case Complete:
		return "complete"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Busy reports whether a session is in flight. The submit control is
// disabled exactly when Busy is true.
func (s State) Busy() bool {
	return s == Processing || s == Streaming
}

// View is the UI surface a Controller drives. Only the Controller writes
// to it, and only for the current session.
type View interface {
	// Reset starts rendering a new session in Idle with submit enabled,
	// discarding prior output.
	Reset(sessionID uint64)
	// SetState shows s and, in the same step, enables the submit control
	// exactly when s is not Busy.
	SetState(State)
	SetSubmitEnabled(bool)
	// ShowPending displays the waiting indicator.
	ShowPending()
	// Render replaces the displayed text with the accumulated response and
	// scrolls to its end.
	Render(text string)
	// MarkComplete appends the completion marker.
	MarkComplete()
	// ShowError replaces the displayed text with message.
	ShowError(message string)
}
