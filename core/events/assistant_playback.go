package events

// KindAssistantPlaybackStarted identifies the hand-off of reply audio to
// the playback sink.
const KindAssistantPlaybackStarted Kind = "assistant_playback.started"

// AssistantPlaybackStarted marks the start of assistant playback.
type AssistantPlaybackStarted struct{ Base }

// NewAssistantPlaybackStarted creates an assistant playback started event.
func NewAssistantPlaybackStarted() AssistantPlaybackStarted {
	return AssistantPlaybackStarted{Base: NewBase(KindAssistantPlaybackStarted)}
}
