package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rpg-engine/internal/engine"
	"rpg-engine/internal/extractor"
	"rpg-engine/internal/prompts"
	"rpg-engine/internal/repository"
	"rpg-engine/shared/interfaces"
	"rpg-engine/shared/models"
)

// GameService runs interactive game sessions: it owns the live sessions,
// orchestrates story generation, attribute extraction and reconciliation,
// and persists state through the save repository.
type GameService struct {
	client    interfaces.ChatClient
	extractor *extractor.Extractor
	repo      repository.GameSaveRepository
	oracle    *chatOracle
	logger    *zap.Logger

	maxAliveNPCs  int
	eventMaxRolls int
	newRNG        func() *rand.Rand

	mu       sync.RWMutex
	sessions map[uuid.UUID]*gameSession
}

// Options tunes the service. Zero values select defaults.
type Options struct {
	// MaxAliveNPCs stops the narrative from introducing new characters once
	// this many NPCs are alive.
	MaxAliveNPCs int
	// RandomEventMaxRolls bounds the effect re-pick loop of random events.
	RandomEventMaxRolls int
	// NewRNG supplies the random source for a new session. Tests inject a
	// seeded one.
	NewRNG func() *rand.Rand
}

// NewGameService wires the service together.
func NewGameService(client interfaces.ChatClient, ext *extractor.Extractor, repo repository.GameSaveRepository, logger *zap.Logger, opts Options) *GameService {
	if opts.MaxAliveNPCs <= 0 {
		opts.MaxAliveNPCs = 5
	}
	if opts.RandomEventMaxRolls <= 0 {
		opts.RandomEventMaxRolls = 15
	}
	if opts.NewRNG == nil {
		opts.NewRNG = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &GameService{
		client:        client,
		extractor:     ext,
		repo:          repo,
		oracle:        &chatOracle{client: client},
		logger:        logger,
		maxAliveNPCs:  opts.MaxAliveNPCs,
		eventMaxRolls: opts.RandomEventMaxRolls,
		newRNG:        opts.NewRNG,
		sessions:      make(map[uuid.UUID]*gameSession),
	}
}

// NewGameRequest describes a game to start. Rules and Environment are
// optional; when absent they are generated for the genre.
type NewGameRequest struct {
	Genre         string
	MainCharacter *models.Character
	Rules         []string
	Environment   string
}

// GameState is the read view of one session.
type GameState struct {
	ID            string              `json:"id"`
	Genre         string              `json:"genre"`
	Story         []string            `json:"story"`
	MainCharacter *models.Character   `json:"main_character"`
	Characters    []*models.Character `json:"characters"`
	World         *models.World       `json:"world"`
	Timeline      *models.Timeline    `json:"timeline"`
	MainDead      bool                `json:"main_dead"`
}

// NewGame starts a session: it builds the world (generating rules and an
// environment when the request leaves them to the default mode), opens the
// story and runs the first reconciliation cycle over the opening beat.
func (s *GameService) NewGame(ctx context.Context, req NewGameRequest) (*GameState, error) {
	if req.Genre == "" || req.MainCharacter == nil || req.MainCharacter.Name == "" {
		return nil, models.ErrInvalidInput
	}

	eng := engine.New(s.logger, s.newRNG())
	main := req.MainCharacter
	main.ID = 1
	eng.SetMainCharacter(main)

	world := &models.World{
		Genre:       req.Genre,
		Rules:       req.Rules,
		Environment: req.Environment,
	}
	if len(world.Rules) == 0 {
		rules, err := s.generateRules(ctx, req.Genre)
		if err != nil {
			return nil, err
		}
		world.Rules = rules
	}
	if world.Environment == "" {
		env, err := s.generateEnvironment(ctx, req.Genre)
		if err != nil {
			return nil, err
		}
		world.Environment = env
	}
	if main.CurrentLocation != "" {
		world.AddLocation(main.CurrentLocation)
	}
	eng.SetWorld(world)

	session := newGameSession(uuid.New(), eng)
	session.eventCountdown = 1 + eng.Rand().Intn(10)
	session.newCharCountdown = newCharCadence(main)

	opening := prompts.StartingPrompt(req.Genre, main.Name,
		formatAllCharacters(eng), prompts.FormatWorld(world), prompts.FormatTimeline(eng.Timeline()))
	story, err := s.generateStory(ctx, session, opening)
	if err != nil {
		return nil, err
	}
	session.pushStory(story)

	if _, err := s.reconcileTurn(ctx, session, false); err != nil {
		return nil, err
	}
	s.autosave(ctx, session)

	// Snapshot before the session is reachable by other callers.
	state := s.snapshot(session)
	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	s.logger.Info("Game started",
		zap.String("game_id", session.id.String()),
		zap.String("genre", req.Genre),
		zap.String("main_character", main.Name),
	)
	return state, nil
}

// GetGame returns the current state of a session.
func (s *GameService) GetGame(id uuid.UUID) (*GameState, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.snapshot(session), nil
}

// SaveGame writes the session to the save repository and returns the save
// name.
func (s *GameService) SaveGame(ctx context.Context, id uuid.UUID) (string, error) {
	session, err := s.session(id)
	if err != nil {
		return "", err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.repo.Save(ctx, s.buildSave(session))
}

// LoadGame restores a saved session under a fresh session ID.
func (s *GameService) LoadGame(ctx context.Context, name string) (*GameState, error) {
	save, err := s.repo.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if save.MainCharacter == nil {
		return nil, models.ErrInvalidInput
	}

	eng := engine.New(s.logger, s.newRNG())
	eng.SetMainCharacter(save.MainCharacter)
	for _, c := range save.Characters {
		eng.AddCharacter(c)
	}
	if save.World != nil {
		eng.SetWorld(save.World)
	}
	if save.Timeline != nil {
		eng.SetTimeline(save.Timeline)
	}

	session := newGameSession(uuid.New(), eng)
	session.restoreHistories(save.Histories)
	session.eventCountdown = 1 + eng.Rand().Intn(10)
	session.newCharCountdown = newCharCadence(save.MainCharacter)

	// The story log comes back from the story conversation itself.
	for _, msg := range session.story.History() {
		if msg.Role == models.ChatRoleAssistant {
			session.pushStory(msg.Content)
		}
	}
	session.mainDead = save.MainCharacter.IsDeceased()

	// Snapshot before the session is reachable by other callers.
	state := s.snapshot(session)
	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	s.logger.Info("Game loaded",
		zap.String("game_id", session.id.String()),
		zap.String("save", name),
	)
	return state, nil
}

// ListSaves returns the available save names.
func (s *GameService) ListSaves(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// ExportStory writes the finished session out as a bundle and returns the
// directory it created.
func (s *GameService) ExportStory(ctx context.Context, id uuid.UUID) (string, error) {
	session, err := s.session(id)
	if err != nil {
		return "", err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.repo.ExportStory(ctx, s.buildSave(session), session.storyLog)
}

func (s *GameService) session(id uuid.UUID) (*gameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, models.ErrGameNotFound
	}
	return session, nil
}

// snapshot deep-copies the session state. Handlers marshal the returned
// GameState after the session lock is released, so it must not alias objects
// a concurrent turn keeps mutating.
func (s *GameService) snapshot(session *gameSession) *GameState {
	npcs := make([]*models.Character, 0, len(session.engine.Characters()))
	for _, npc := range session.engine.Characters() {
		npcs = append(npcs, npc.Clone())
	}
	return &GameState{
		ID:            session.id.String(),
		Genre:         session.engine.World().Genre,
		Story:         append([]string{}, session.storyLog...),
		MainCharacter: session.engine.MainCharacter().Clone(),
		Characters:    npcs,
		World:         session.engine.World().Clone(),
		Timeline:      session.engine.Timeline().Clone(),
		MainDead:      session.mainDead,
	}
}

func (s *GameService) buildSave(session *gameSession) *models.GameSave {
	return &models.GameSave{
		World:         session.engine.World(),
		Characters:    session.engine.Characters(),
		Timeline:      session.engine.Timeline(),
		MainCharacter: session.engine.MainCharacter(),
		Histories:     session.histories(),
	}
}

// autosave persists the session after every applied turn; a failure is
// logged but never fails the turn.
func (s *GameService) autosave(ctx context.Context, session *gameSession) {
	if _, err := s.repo.Save(ctx, s.buildSave(session)); err != nil {
		s.logger.Warn("Autosave failed",
			zap.String("game_id", session.id.String()), zap.Error(err))
	}
}

// generateStory advances the story conversation with one prompt.
func (s *GameService) generateStory(ctx context.Context, session *gameSession, prompt string) (string, error) {
	session.story.AppendUser(prompt)
	reply, err := s.client.Chat(ctx, session.story.History())
	if err != nil {
		return "", fmt.Errorf("story generation failed: %w", err)
	}
	reply = strings.TrimSpace(reply)
	session.story.AppendAssistant(reply)
	return reply, nil
}

// newCharCadence derives how many turns pass between NPC introductions from
// the main character's charisma.
func newCharCadence(main *models.Character) int {
	cadence := 21 - main.Charisma()
	if cadence < 1 {
		cadence = 1
	}
	return cadence
}

func formatAllCharacters(eng *engine.Engine) string {
	parts := []string{prompts.FormatCharacter(eng.MainCharacter())}
	for _, npc := range eng.Characters() {
		parts = append(parts, prompts.FormatCharacter(npc))
	}
	return strings.Join(parts, ",\n")
}
