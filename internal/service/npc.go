package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rpg-engine/internal/prompts"
	"rpg-engine/shared/models"
)

// checkNewNPCs asks whether the latest story beat introduced characters that
// need dictionaries. The reply is "True ["Jane", ...]" or "False"; anything
// unparseable is treated as no.
func (s *GameService) checkNewNPCs(ctx context.Context, session *gameSession, story string) ([]string, error) {
	npcNames := make([]string, 0, len(session.engine.Characters()))
	for _, npc := range session.engine.Characters() {
		npcNames = append(npcNames, npc.Name)
	}

	check := session.ensureNPCCheck(session.engine.MainCharacter().Name)
	check.AppendUser(prompts.NPCCheckRequest(story, npcNames))
	reply, err := s.client.Chat(ctx, check.History())
	if err != nil {
		return nil, fmt.Errorf("npc creation check failed: %w", err)
	}
	check.AppendAssistant(reply)

	verdict, rest, _ := strings.Cut(strings.TrimSpace(reply), " ")
	if !strings.EqualFold(verdict, "true") {
		return nil, nil
	}

	names, err := parseNameList(rest)
	if err != nil {
		s.logger.Warn("NPC check reply unparseable, skipping creation",
			zap.String("reply", reply), zap.Error(err))
		return nil, nil
	}
	return names, nil
}

// createNPCs asks for full character dictionaries for the named characters
// and adds them to the roster with sequential IDs.
func (s *GameService) createNPCs(ctx context.Context, session *gameSession, names []string, story string) error {
	startID := session.engine.NextCharID()
	genre := session.engine.World().Genre

	session.npcCreation.AppendUser(prompts.NPCCreationRequest(names, startID, genre, story))
	reply, err := s.client.Chat(ctx, session.npcCreation.History())
	if err != nil {
		return fmt.Errorf("npc creation failed: %w", err)
	}
	session.npcCreation.AppendAssistant(reply)

	chars, err := parseCharacterList(reply)
	if err != nil {
		return fmt.Errorf("parse npc dictionaries: %w", err)
	}
	for i, c := range chars {
		// IDs are assigned here, not trusted from the reply.
		c.ID = startID + i
		session.engine.AddCharacter(c)
		s.logger.Info("NPC created",
			zap.Int("char_id", c.ID), zap.String("name", c.Name))
	}
	return nil
}

// parseNameList reads a JSON list of names, tolerating curly quotes and code
// fences in the reply.
func parseNameList(raw string) ([]string, error) {
	raw = sanitizeJSON(raw)
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, err
	}
	return names, nil
}

// parseCharacterList reads a JSON list of character dictionaries. A single
// bare object is accepted too.
func parseCharacterList(raw string) ([]*models.Character, error) {
	raw = sanitizeJSON(raw)
	var chars []*models.Character
	if err := json.Unmarshal([]byte(raw), &chars); err != nil {
		var single models.Character
		if serr := json.Unmarshal([]byte(raw), &single); serr != nil {
			return nil, err
		}
		chars = []*models.Character{&single}
	}
	return chars, nil
}

// sanitizeJSON strips markdown fences and curly quotes the model sometimes
// wraps JSON payloads in.
func sanitizeJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.NewReplacer("“", `"`, "”", `"`).Replace(raw)
	return strings.TrimSpace(raw)
}
