package service

import (
	"sync"

	"github.com/google/uuid"

	"rpg-engine/internal/engine"
	"rpg-engine/internal/prompts"
	"rpg-engine/pkg/ai"
	"rpg-engine/shared/models"
)

// Conversation names, also the history keys inside save files.
const (
	sessionStory        = "story"
	sessionNPCCheck     = "npc_check"
	sessionNPCCreation  = "npc_creation"
	updateSessionPrefix = "updates_"
)

// recentStoryWindow is how many story beats feed the extraction pipelines.
const recentStoryWindow = 3

// updateHistoryPairs bounds how many past exchanges each extraction
// conversation keeps between turns.
const updateHistoryPairs = 3

// gameSession is the live state of one running game: the engine that owns
// the world model, every conversation history and the turn counters.
// The mutex serializes turns; extraction pipelines inside a turn run
// concurrently but each owns its session.
type gameSession struct {
	mu sync.Mutex

	id     uuid.UUID
	engine *engine.Engine

	story          *ai.ChatSession
	npcCheck       *ai.ChatSession
	npcCreation    *ai.ChatSession
	updateSessions map[models.AttributeKind]*ai.ChatSession

	recentStories []string // sliding window fed to extraction
	storyLog      []string // every story beat, for export
	deceasedLine  string   // carried into the next continuation prompt

	eventCountdown   int // random event fires when it reaches 1
	newCharCountdown int // new NPC introduction cadence, driven by charisma

	mainDead bool
}

func newGameSession(id uuid.UUID, eng *engine.Engine) *gameSession {
	s := &gameSession{
		id:             id,
		engine:         eng,
		story:          ai.NewChatSession(sessionStory, prompts.StorySystemPrompt),
		npcCreation:    ai.NewChatSession(sessionNPCCreation, prompts.NPCCreationSystemPrompt),
		updateSessions: make(map[models.AttributeKind]*ai.ChatSession, len(models.AllAttributeKinds)),
	}
	for _, kind := range models.AllAttributeKinds {
		s.updateSessions[kind] = ai.NewChatSession(updateSessionPrefix+string(kind), prompts.UpdateSystemPrompt(kind))
	}
	return s
}

// pushStory records a new story beat in both the sliding window and the log.
func (s *gameSession) pushStory(story string) {
	if len(s.recentStories) >= recentStoryWindow {
		s.recentStories = s.recentStories[1:]
	}
	s.recentStories = append(s.recentStories, story)
	s.storyLog = append(s.storyLog, story)
}

// replaceLastStory swaps the most recent beat after a regeneration.
func (s *gameSession) replaceLastStory(story string) {
	if len(s.recentStories) > 0 {
		s.recentStories[len(s.recentStories)-1] = story
	}
	if len(s.storyLog) > 0 {
		s.storyLog[len(s.storyLog)-1] = story
	}
}

// fullStory joins the sliding window; condition, relationship, hp and
// location extraction read the wider window, money and inventory only the
// latest beat.
func (s *gameSession) fullStory() string {
	out := ""
	for i, beat := range s.recentStories {
		if i > 0 {
			out += "\n"
		}
		out += beat
	}
	return out
}

// histories flattens every conversation for persistence.
func (s *gameSession) histories() map[string][]models.ChatMessage {
	h := map[string][]models.ChatMessage{
		sessionStory:       s.story.History(),
		sessionNPCCreation: s.npcCreation.History(),
	}
	if s.npcCheck != nil {
		h[sessionNPCCheck] = s.npcCheck.History()
	}
	for kind, session := range s.updateSessions {
		h[updateSessionPrefix+string(kind)] = session.History()
	}
	return h
}

// restoreHistories reloads conversation histories from a save.
func (s *gameSession) restoreHistories(h map[string][]models.ChatMessage) {
	if msgs, ok := h[sessionStory]; ok {
		s.story.Messages = msgs
	}
	if msgs, ok := h[sessionNPCCreation]; ok {
		s.npcCreation.Messages = msgs
	}
	if msgs, ok := h[sessionNPCCheck]; ok {
		s.ensureNPCCheck("")
		s.npcCheck.Messages = msgs
	}
	for kind, session := range s.updateSessions {
		if msgs, ok := h[updateSessionPrefix+string(kind)]; ok {
			session.Messages = msgs
		}
	}
}

// ensureNPCCheck lazily creates the NPC check conversation; its system
// prompt needs the main character's name, which is unknown at construction.
func (s *gameSession) ensureNPCCheck(mainCharName string) *ai.ChatSession {
	if s.npcCheck == nil {
		s.npcCheck = ai.NewChatSession(sessionNPCCheck, prompts.NPCCheckSystemPrompt(mainCharName))
	}
	return s.npcCheck
}
