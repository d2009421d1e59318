package orchestration

import "github.com/koscakluka/ema-voiceturn/core/conversations"

// TurnState is the position of the orchestrator in the voice turn pipeline.
// A single value replaces separate listening and awaiting-reply flags, so
// both can never hold at once.
type TurnState int

const (
	TurnStateIdle TurnState = iota
	TurnStateListening
	TurnStateTranscribed
	TurnStateCompleting
	TurnStateSynthesizing
	TurnStatePlaying
)

func (s TurnState) String() string {
	switch s {
	case TurnStateIdle:
		return "idle"
	case TurnStateListening:
		return "listening"
	case TurnStateTranscribed:
		return "transcribed"
	case TurnStateCompleting:
		return "completing"
	case TurnStateSynthesizing:
		return "synthesizing"
	case TurnStatePlaying:
		return "playing"
	}
	return "unknown"
}

func (s TurnState) IsListening() bool { return s == TurnStateListening }

// IsAwaitingReply reports whether a transcribed utterance is still being
// answered.
func (s TurnState) IsAwaitingReply() bool {
	switch s {
	case TurnStateTranscribed, TurnStateCompleting, TurnStateSynthesizing, TurnStatePlaying:
		return true
	}
	return false
}

// SessionState is a point-in-time view of the session for collaborators.
type SessionState struct {
	State         TurnState
	Listening     bool
	AwaitingReply bool
	Transcript    []conversations.Turn
}
