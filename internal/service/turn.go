package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rpg-engine/internal/engine"
	"rpg-engine/internal/prompts"
	"rpg-engine/shared/models"
)

// maxMoneyRegenerations bounds the regenerate-on-insufficient-funds loop so
// a model that keeps narrating impossible purchases cannot spin forever.
const maxMoneyRegenerations = 5

// TurnResult is what one advanced turn hands back to the caller.
type TurnResult struct {
	Story       string `json:"story"`
	Event       string `json:"event,omitempty"`        // random event notice, names substituted
	Warning     string `json:"warning,omitempty"`      // inventory warning; set alone, the turn did not advance
	EndingStory string `json:"ending_story,omitempty"` // wrap-up beat when the main character died
	MainDead    bool   `json:"main_dead"`
}

// Turn advances the story by one beat from the player's input and reconciles
// every tracked attribute afterwards. The whole turn is serialized per
// session; the six extraction pipelines inside it run concurrently.
func (s *GameService) Turn(ctx context.Context, id uuid.UUID, userInput string) (*TurnResult, error) {
	if userInput == "" {
		return nil, models.ErrInvalidInput
	}
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.mainDead {
		return nil, models.ErrMainCharacterDead
	}

	eng := session.engine
	main := eng.MainCharacter()
	genre := eng.World().Genre
	prevMoney := main.Money

	// The player cannot act with items they do not hold.
	if warning, err := s.checkInventoryUse(ctx, session, userInput); err == nil && warning != "" {
		return &TurnResult{Warning: warning}, nil
	}

	// Random event, on its own cadence.
	var event *engine.Event
	var eventNotice string
	if session.eventCountdown == 1 {
		event, err = eng.RandomEvent(ctx, s.oracle, s.eventMaxRolls)
		if err != nil {
			return nil, err
		}
		if event != nil {
			eventNotice = prompts.ReplaceIDsWithNames(event.Description, eng.Roster())
			s.logger.Info("Random event triggered",
				zap.String("game_id", session.id.String()),
				zap.String("status", event.Status),
			)
		}
	}

	introduceNPC := session.newCharCountdown == 1 && eng.AliveNPCCount() < s.maxAliveNPCs
	opts := prompts.ContinuationOptions{
		DeceasedMessage: session.deceasedLine,
		RandomEvent:     "",
		IntroduceNPC:    introduceNPC,
	}
	if event != nil {
		opts.RandomEvent = event.Description
	}
	session.deceasedLine = ""

	charContext := formatAllCharacters(eng)
	story, err := s.generateStory(ctx, session,
		prompts.ContinuationPrompt(genre, main.Name, userInput, charContext, opts))
	if err != nil {
		return nil, err
	}
	session.pushStory(story)

	// NPC cadence bookkeeping mirrors the prompt decision above.
	if introduceNPC {
		session.newCharCountdown = newCharCadence(main)
	}
	if eng.AliveNPCCount() < s.maxAliveNPCs {
		session.newCharCountdown--
	}

	story, err = s.reconcileTurn(ctx, session, true)
	if err != nil {
		return nil, err
	}

	// Make sure the narrated event and the applied updates agree.
	if event != nil {
		eng.DoubleUpdateCheck(event, prevMoney)
	}
	if session.eventCountdown == 1 {
		session.eventCountdown = 2 + eng.Rand().Intn(9)
	}
	session.eventCountdown--

	result := &TurnResult{Story: story, Event: eventNotice}

	mainDead, deceasedLine := eng.CheckDeceased(genre)
	session.deceasedLine = deceasedLine
	if mainDead {
		session.mainDead = true
		result.MainDead = true
		if deceasedLine != "" {
			ending, err := s.finishStory(ctx, session, deceasedLine)
			if err != nil {
				s.logger.Warn("Ending story generation failed",
					zap.String("game_id", session.id.String()), zap.Error(err))
			} else {
				result.EndingStory = ending
			}
		}
	}

	s.autosave(ctx, session)
	return result, nil
}

// reconcileTurn runs the full extraction, validation and apply cycle over
// the most recent story beat: money first behind the transaction gate, then
// the remaining five attribute pipelines concurrently, then a single apply
// pass in a fixed order. Returns the (possibly regenerated) beat.
func (s *GameService) reconcileTurn(ctx context.Context, session *gameSession, checkNPCs bool) (string, error) {
	eng := session.engine
	latest := session.recentStories[len(session.recentStories)-1]
	roster := eng.Roster()

	// Money comes first: an invalid transaction invalidates the story beat
	// itself, so the beat is regenerated before anything else reads it.
	moneyContext := prompts.CharacterContext(models.KindMoney, eng.MainCharacter(), eng.Characters())
	moneyUpdates, err := s.extractor.Extract(ctx, models.KindMoney,
		session.updateSessions[models.KindMoney], latest, moneyContext, roster)
	if err != nil {
		return "", err
	}
	for regens := 0; ; regens++ {
		valid, offenders := engine.CheckMoney(moneyUpdates, roster)
		if valid {
			break
		}
		if regens >= maxMoneyRegenerations {
			s.logger.Warn("Money validation still failing, dropping money updates",
				zap.String("game_id", session.id.String()),
				zap.Int("regenerations", regens),
				zap.Error(models.ErrInsufficientFunds),
			)
			moneyUpdates = nil
			break
		}
		latest, err = s.generateStory(ctx, session, prompts.MoneyMessage(offenders))
		if err != nil {
			return "", err
		}
		session.replaceLastStory(latest)
		moneyUpdates, err = s.extractor.Extract(ctx, models.KindMoney,
			session.updateSessions[models.KindMoney], latest, moneyContext, roster)
		if err != nil {
			return "", err
		}
	}

	if checkNPCs {
		names, err := s.checkNewNPCs(ctx, session, latest)
		if err != nil {
			s.logger.Warn("NPC creation check failed",
				zap.String("game_id", session.id.String()), zap.Error(err))
		} else if len(names) > 0 {
			if err := s.createNPCs(ctx, session, names, latest); err != nil {
				s.logger.Warn("NPC creation failed",
					zap.String("game_id", session.id.String()), zap.Error(err))
			}
			roster = eng.Roster()
		}
	}

	// The remaining pipelines run concurrently over read-only snapshots and
	// their own sessions; results are gathered before a single apply pass.
	fullStory := session.fullStory()
	storyFor := func(kind models.AttributeKind) string {
		// Inventory reads only the latest beat; re-reading the window makes
		// the model re-report items it already granted.
		if kind == models.KindInventory {
			return latest
		}
		return fullStory
	}

	extracted := make(map[models.AttributeKind][]models.Update, len(models.AllAttributeKinds))
	var keyEvent string

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for _, kind := range models.AllAttributeKinds {
		if kind == models.KindMoney {
			continue
		}
		g.Go(func() error {
			charContext := prompts.CharacterContext(kind, eng.MainCharacter(), eng.Characters())
			updates, err := s.extractor.Extract(gctx, kind,
				session.updateSessions[kind], storyFor(kind), charContext, roster)
			if err != nil {
				return err
			}
			mu.Lock()
			extracted[kind] = updates
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		var err error
		keyEvent, err = s.summarizeKeyEvent(gctx, latest)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	// Single-writer apply pass, fixed order: hp runs after condition so the
	// damping reads post-update health, location runs last so the world
	// follows the final positions.
	eng.ApplyPhysicalCondition(extracted[models.KindPhysicalCondition])
	eng.ApplyMoney(moneyUpdates)
	eng.ApplyRelationship(extracted[models.KindRelationship])
	eng.ApplyInventory(extracted[models.KindInventory])
	eng.ApplyHP(extracted[models.KindHP])
	mainMoved := eng.ApplyLocation(extracted[models.KindLocation])

	if mainMoved {
		env, err := s.generateEnvironment(ctx, latest)
		if err != nil {
			s.logger.Warn("Environment refresh failed",
				zap.String("game_id", session.id.String()), zap.Error(err))
		} else {
			eng.SetEnvironment(env)
		}
	}

	eng.Timeline().AddEvent(keyEvent)

	for _, updateSession := range session.updateSessions {
		updateSession.TrimHistory(updateHistoryPairs)
	}
	return latest, nil
}

// finishStory generates the wrap-up beat after the main character's death
// and runs the final, narrower reconciliation over it.
func (s *GameService) finishStory(ctx context.Context, session *gameSession, deceasedLine string) (string, error) {
	eng := session.engine
	ending, err := s.generateStory(ctx, session, deceasedLine)
	if err != nil {
		return "", err
	}
	session.pushStory(ending)

	roster := eng.Roster()
	g, gctx := errgroup.WithContext(ctx)
	extracted := make(map[models.AttributeKind][]models.Update, 3)
	var mu sync.Mutex
	for _, kind := range []models.AttributeKind{models.KindRelationship, models.KindInventory, models.KindLocation} {
		g.Go(func() error {
			charContext := prompts.CharacterContext(kind, eng.MainCharacter(), eng.Characters())
			updates, err := s.extractor.Extract(gctx, kind,
				session.updateSessions[kind], ending, charContext, roster)
			if err != nil {
				return err
			}
			mu.Lock()
			extracted[kind] = updates
			mu.Unlock()
			return nil
		})
	}
	var keyEvent string
	g.Go(func() error {
		var err error
		keyEvent, err = s.summarizeKeyEvent(gctx, ending)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("final updates failed: %w", err)
	}

	eng.ApplyRelationship(extracted[models.KindRelationship])
	eng.ApplyInventory(extracted[models.KindInventory])
	eng.ApplyLocation(extracted[models.KindLocation])
	eng.Timeline().AddEvent(keyEvent)
	return ending, nil
}
