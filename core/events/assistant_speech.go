package events

// KindAssistantSpeechGenerated identifies synthesized reply audio.
const KindAssistantSpeechGenerated Kind = "assistant_speech.generated"

// AssistantSpeechGenerated carries the synthesized audio for the reply.
type AssistantSpeechGenerated struct {
	Base
	Audio []byte
}

// NewAssistantSpeechGenerated creates an assistant speech generated event.
func NewAssistantSpeechGenerated(audio []byte) AssistantSpeechGenerated {
	return AssistantSpeechGenerated{Base: NewBase(KindAssistantSpeechGenerated), Audio: audio}
}
