package events

const (
	// KindTurnStateChanged identifies a voice turn state transition.
	KindTurnStateChanged Kind = "turn_state.changed"
	// KindTurnFailed identifies a voice turn that ended on a failure.
	KindTurnFailed Kind = "turn_state.failed"
	// KindTurnEnded identifies the end of a voice turn, successful or not.
	KindTurnEnded Kind = "turn_state.ended"
)

// TurnStateChanged carries the previous and current turn state names.
type TurnStateChanged struct {
	Base
	TurnID   string
	Previous string
	Current  string
}

// NewTurnStateChanged creates a turn state changed event.
func NewTurnStateChanged(turnID, previous, current string) TurnStateChanged {
	return TurnStateChanged{Base: NewBase(KindTurnStateChanged), TurnID: turnID, Previous: previous, Current: current}
}

// TurnFailed carries the stage the turn failed at and the failure.
type TurnFailed struct {
	Base
	TurnID string
	Stage  string
	Err    error
}

// NewTurnFailed creates a turn failed event.
func NewTurnFailed(turnID, stage string, err error) TurnFailed {
	return TurnFailed{Base: NewBase(KindTurnFailed), TurnID: turnID, Stage: stage, Err: err}
}

// TurnEnded marks the return to idle. Outcome is "completed" for a turn
// that reached playback or ended text-only, otherwise the failed stage.
type TurnEnded struct {
	Base
	TurnID  string
	Outcome string
}

// NewTurnEnded creates a turn ended event.
func NewTurnEnded(turnID, outcome string) TurnEnded {
	return TurnEnded{Base: NewBase(KindTurnEnded), TurnID: turnID, Outcome: outcome}
}
