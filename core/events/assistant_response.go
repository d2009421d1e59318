package events

// KindAssistantResponseFinal identifies the completed reply text.
const KindAssistantResponseFinal Kind = "assistant_response.final"

// AssistantResponseFinal carries the reply recorded as the assistant turn.
type AssistantResponseFinal struct {
	Base
	Response string
}

// NewAssistantResponseFinal creates an assistant response final event.
func NewAssistantResponseFinal(response string) AssistantResponseFinal {
	return AssistantResponseFinal{Base: NewBase(KindAssistantResponseFinal), Response: response}
}
