package ai

import "rpg-engine/shared/models"

// ChatSession is one named conversation history. Sessions are explicit
// objects rather than process-wide state so several games can run
// concurrently and tests stay hermetic.
//
// A ChatSession is not safe for concurrent use; each extraction pipeline
// owns its session for the duration of a turn.
type ChatSession struct {
	Name     string               `json:"name"`
	Messages []models.ChatMessage `json:"messages"`
}

// NewChatSession creates a session seeded with a system prompt. An empty
// systemPrompt starts a bare history.
func NewChatSession(name, systemPrompt string) *ChatSession {
	s := &ChatSession{Name: name}
	if systemPrompt != "" {
		s.Messages = append(s.Messages, models.ChatMessage{
			Role:    models.ChatRoleSystem,
			Content: systemPrompt,
		})
	}
	return s
}

// AppendUser records a user message.
func (s *ChatSession) AppendUser(content string) {
	s.Messages = append(s.Messages, models.ChatMessage{Role: models.ChatRoleUser, Content: content})
}

// AppendAssistant records an assistant reply.
func (s *ChatSession) AppendAssistant(content string) {
	s.Messages = append(s.Messages, models.ChatMessage{Role: models.ChatRoleAssistant, Content: content})
}

// History returns the messages to send with the next request.
func (s *ChatSession) History() []models.ChatMessage {
	return s.Messages
}

// TrimHistory drops all but the system prompt and the last keepPairs
// user/assistant exchanges, bounding token growth over long games.
func (s *ChatSession) TrimHistory(keepPairs int) {
	if keepPairs < 0 {
		keepPairs = 0
	}
	var system []models.ChatMessage
	rest := s.Messages
	if len(rest) > 0 && rest[0].Role == models.ChatRoleSystem {
		system = rest[:1]
		rest = rest[1:]
	}
	if len(rest) > keepPairs*2 {
		rest = rest[len(rest)-keepPairs*2:]
	}
	s.Messages = append(append([]models.ChatMessage{}, system...), rest...)
}
