package conversations

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) String() string { return string(r) }

// Turn is a single utterance by either the person or the assistant. Turns are
// values and are never modified after being recorded.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func NewUserTurn(content string) Turn      { return Turn{Role: RoleUser, Content: content} }
func NewAssistantTurn(content string) Turn { return Turn{Role: RoleAssistant, Content: content} }
