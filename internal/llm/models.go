// internal/llm/models.go
package llm

// RoleUser is the only role this client sends.
const RoleUser = "user"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the provider's wire shape and must not change.
type CompletionRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

type ContentBlock struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

type CompletionResponse struct {
	Content []ContentBlock `json:"content"`
}

// UserMessage builds a single user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
