package service

import (
	"context"
	"fmt"
	"strings"

	"rpg-engine/internal/prompts"
	"rpg-engine/shared/models"
)

// generateRules asks for the unbreakable world rules of a genre, used when
// the player picks the default mode instead of writing their own.
func (s *GameService) generateRules(ctx context.Context, genre string) ([]string, error) {
	reply, err := s.oracle.oneShot(ctx, prompts.RulesSystemPrompt, genre)
	if err != nil {
		return nil, fmt.Errorf("rules generation failed: %w", err)
	}
	var rules []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line != "" {
			rules = append(rules, line)
		}
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules generation returned nothing usable")
	}
	return rules, nil
}

// generateEnvironment asks for a one-sentence scene description from a genre
// or a story excerpt.
func (s *GameService) generateEnvironment(ctx context.Context, seed string) (string, error) {
	env, err := s.oracle.oneShot(ctx, prompts.EnvironmentSystemPrompt, seed)
	if err != nil {
		return "", fmt.Errorf("environment generation failed: %w", err)
	}
	return env, nil
}

// summarizeKeyEvent condenses the latest story beat into one timeline
// sentence.
func (s *GameService) summarizeKeyEvent(ctx context.Context, story string) (string, error) {
	event, err := s.oracle.oneShot(ctx, prompts.KeyEventSystemPrompt, story)
	if err != nil {
		return "", fmt.Errorf("key event summary failed: %w", err)
	}
	return event, nil
}

// checkInventoryUse asks whether the player's action uses specific items and
// reports the ones the main character does not hold. An empty warning means
// the action is fine; a check failure is swallowed so a flaky model never
// blocks play.
func (s *GameService) checkInventoryUse(ctx context.Context, session *gameSession, userInput string) (string, error) {
	reply, err := s.oracle.oneShot(ctx, prompts.InventoryCheckSystemPrompt, userInput)
	if err != nil {
		return "", err
	}

	verdict, rest, _ := strings.Cut(strings.TrimSpace(reply), " ")
	if !strings.EqualFold(verdict, "true") {
		return "", nil
	}
	items, err := parseNameList(rest)
	if err != nil {
		return "", nil
	}

	main := session.engine.MainCharacter()
	var missing []string
	for _, item := range items {
		if !holdsItem(main, item) {
			missing = append(missing, item)
		}
	}
	if len(missing) == 0 {
		return "", nil
	}
	return fmt.Sprintf("You are trying to use items not in your inventory or in the story: %s", strings.Join(missing, ", ")), nil
}

// holdsItem matches loosely: "sword" counts against "rusty sword".
func holdsItem(c *models.Character, item string) bool {
	item = strings.ToLower(item)
	for _, held := range c.Inventory {
		if strings.Contains(strings.ToLower(held), item) {
			return true
		}
	}
	return false
}
