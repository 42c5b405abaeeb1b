package service

import (
	"context"
	"strings"

	"rpg-engine/internal/prompts"
	"rpg-engine/shared/interfaces"
	"rpg-engine/shared/models"
)

// chatOracle answers the small one-shot questions random events need. Each
// call is a fresh conversation with no history.
type chatOracle struct {
	client interfaces.ChatClient
}

func (o *chatOracle) NewCondition(ctx context.Context, current string, positive bool) (string, error) {
	reply, err := o.oneShot(ctx, prompts.ConditionSystemPrompt(positive), current)
	if err != nil {
		return "", err
	}
	// "False" means the condition already sits at that extreme.
	if strings.EqualFold(reply, "false") {
		return "", nil
	}
	return reply, nil
}

func (o *chatOracle) NewRelationship(ctx context.Context, current string, positive bool) (string, error) {
	return o.oneShot(ctx, prompts.RelationshipShiftSystemPrompt(positive), current)
}

func (o *chatOracle) NewItem(ctx context.Context, world *models.World) (string, error) {
	return o.oneShot(ctx, prompts.NewItemSystemPrompt, prompts.NewItemRequest(prompts.FormatWorld(world)))
}

func (o *chatOracle) oneShot(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reply, err := o.client.Chat(ctx, []models.ChatMessage{
		{Role: models.ChatRoleSystem, Content: systemPrompt},
		{Role: models.ChatRoleUser, Content: userPrompt},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
