package llms

import "github.com/koscakluka/ema-voiceturn/core/conversations"

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is one entry of a completion request.
type Message struct {
	Role    MessageRole
	Content string
}

// ToMessages builds the completion request messages: the system directive
// first, followed by the transcript in chronological order.
func ToMessages(systemDirective string, transcript []conversations.Turn) []Message {
	messages := make([]Message, 0, len(transcript)+1)
	if systemDirective != "" {
		messages = append(messages, Message{Role: MessageRoleSystem, Content: systemDirective})
	}

	for _, turn := range transcript {
		switch turn.Role {
		case conversations.RoleUser:
			messages = append(messages, Message{Role: MessageRoleUser, Content: turn.Content})
		case conversations.RoleAssistant:
			messages = append(messages, Message{Role: MessageRoleAssistant, Content: turn.Content})
		}
	}
	return messages
}
