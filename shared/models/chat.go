package models

// Chat roles understood by the OpenAI-compatible endpoint.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one entry of a conversation history. Kept as a local type
// (rather than the SDK's) so histories can be embedded in save files.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
