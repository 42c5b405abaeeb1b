package extractor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rpg-engine/internal/prompts"
	"rpg-engine/pkg/ai"
	"rpg-engine/shared/interfaces"
	"rpg-engine/shared/models"
)

// DefaultMaxRequeryAttempts bounds the corrective requery loop for one line.
const DefaultMaxRequeryAttempts = 30

// Extractor turns the free-text replies of the LLM channel into typed
// attribute updates. It owns no character state: pipelines read a roster
// snapshot and produce updates for the engine to apply.
type Extractor struct {
	client             interfaces.ChatClient
	logger             *zap.Logger
	maxRequeryAttempts int
}

// New creates an Extractor. maxRequeryAttempts <= 0 selects the default.
func New(client interfaces.ChatClient, logger *zap.Logger, maxRequeryAttempts int) *Extractor {
	if maxRequeryAttempts <= 0 {
		maxRequeryAttempts = DefaultMaxRequeryAttempts
	}
	return &Extractor{
		client:             client,
		logger:             logger,
		maxRequeryAttempts: maxRequeryAttempts,
	}
}

// Extract asks the channel for every change of one attribute kind in the
// story excerpt and parses the reply into typed updates.
//
// The conversation history for the kind lives in session, so the model sees
// its earlier updates for this game. A literal "false" reply means no
// updates. Each line is normalized, split and resolved independently;
// malformed lines go through the bounded requery loop, and lines that stay
// unsalvageable are dropped with a diagnostic while the rest of the batch
// survives. Only a channel failure on the initial request aborts the call.
func (e *Extractor) Extract(ctx context.Context, kind models.AttributeKind, session *ai.ChatSession, story, charContext string, roster models.Roster) ([]models.Update, error) {
	session.AppendUser(prompts.UpdateRequest(kind, story, charContext))
	reply, err := e.client.Chat(ctx, session.History())
	if err != nil {
		return nil, fmt.Errorf("update request for %s failed: %w", kind, err)
	}
	session.AppendAssistant(reply)

	reply = Normalize(reply)
	if strings.EqualFold(reply, falseSentinel) {
		return nil, nil
	}

	var updates []models.Update
	for _, line := range strings.Split(reply, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		update, ok := e.extractLine(ctx, kind, line, story, charContext, roster)
		if !ok {
			continue
		}
		updates = append(updates, update)
	}
	return updates, nil
}

// extractLine runs one line through split → resolve, requerying the channel
// for a corrected line until it parses or the retry budget is exhausted.
func (e *Extractor) extractLine(ctx context.Context, kind models.AttributeKind, line, story, charContext string, roster models.Roster) (models.Update, bool) {
	original := line

	var parsed parsedLine
	var charID, otherID int
	attempts := 0
	for {
		var err error
		parsed, err = splitLine(kind, line)
		if err == nil {
			charID, err = ResolveRef(parsed.subject, roster)
			if err == nil && kind == models.KindRelationship {
				otherID, err = ResolveRef(parsed.object, roster)
			}
		}
		if err == nil {
			break
		}

		if attempts >= e.maxRequeryAttempts {
			droppedLinesTotal.WithLabelValues(string(kind)).Inc()
			e.logger.Warn("Update line dropped: retry budget exhausted",
				zap.String("attribute", string(kind)),
				zap.String("line", original),
				zap.Int("attempts", attempts),
				zap.Error(models.ErrLineUnsalvageable),
			)
			return models.Update{}, false
		}
		attempts++

		// The requery always quotes the original offending line; only the
		// parsed reply advances.
		corrected, qerr := e.requery(ctx, kind, story, charContext, original)
		if qerr != nil {
			e.logger.Warn("Requery attempt failed",
				zap.String("attribute", string(kind)),
				zap.Int("attempt", attempts),
				zap.Error(qerr),
			)
			continue
		}
		line = corrected
	}

	value := validateNumeric(kind, parsed.value)
	if strings.EqualFold(value, falseSentinel) {
		droppedLinesTotal.WithLabelValues(string(kind)).Inc()
		e.logger.Warn("Update line dropped: schema returned was incorrect",
			zap.String("attribute", string(kind)),
			zap.String("line", original),
			zap.Error(models.ErrInvalidNumeric),
		)
		return models.Update{}, false
	}

	update := models.Update{
		Kind:   kind,
		CharID: charID,
		Value:  value,
	}
	switch kind {
	case models.KindRelationship:
		update.OtherCharID = otherID
	case models.KindMoney, models.KindInventory, models.KindHP:
		update.Op = parsed.op
	}
	return update, true
}

// requery asks the channel to reformat exactly one malformed line. Each
// requery is a fresh one-shot conversation; the extraction session history
// is not polluted with corrections.
func (e *Extractor) requery(ctx context.Context, kind models.AttributeKind, story, charContext, badLine string) (string, error) {
	requeriesTotal.WithLabelValues(string(kind)).Inc()
	messages := []models.ChatMessage{
		{Role: models.ChatRoleSystem, Content: prompts.RequerySystemPrompt(kind)},
		{Role: models.ChatRoleUser, Content: prompts.RequeryRequest(story, charContext, badLine)},
	}
	reply, err := e.client.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	// A multi-line reply keeps only its first non-empty line.
	for _, line := range strings.Split(reply, "\n") {
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("requery for %s returned an empty reply", kind)
}
