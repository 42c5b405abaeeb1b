package interfaces

import (
	"context"

	"rpg-engine/shared/models"
)

// ChatClient sends one conversation to the language model and returns the raw
// text of the reply. The reply is never assumed to be well-formed; every
// consumer must treat it as untrusted input.
type ChatClient interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
}
