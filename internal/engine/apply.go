package engine

import (
	"strconv"

	"go.uber.org/zap"

	"rpg-engine/shared/models"
)

// ApplyPhysicalCondition sets the new condition for every referenced
// character. NPCs whose condition was left empty (freshly created ones)
// default to Healthy afterwards.
func (e *Engine) ApplyPhysicalCondition(updates []models.Update) {
	for _, u := range updates {
		c := e.characterByID(u.CharID)
		if c == nil {
			e.logUnknownCharacter(u)
			continue
		}
		c.PhysicalCondition = u.Value
	}
	for _, npc := range e.npcs {
		if npc.PhysicalCondition == "" {
			npc.PhysicalCondition = models.ConditionHealthy
		}
	}
}

// ApplyMoney adds or subtracts the validated amounts, rounding every balance
// to 2 decimal places. Callers must run CheckMoney over the batch first;
// updates with unparseable amounts are skipped defensively here.
func (e *Engine) ApplyMoney(updates []models.Update) {
	for _, u := range updates {
		c := e.characterByID(u.CharID)
		if c == nil {
			e.logUnknownCharacter(u)
			continue
		}
		amount, err := strconv.ParseFloat(u.Value, 64)
		if err != nil {
			e.logger.Warn("Money update skipped: invalid amount",
				zap.Int("char_id", u.CharID), zap.String("amount", u.Value),
				zap.Error(models.ErrInvalidNumeric))
			continue
		}
		if u.Op == models.OpIncrease {
			c.IncreaseMoney(amount)
		} else {
			c.DecreaseMoney(amount)
		}
	}
}

// ApplyRelationship upserts the relationship label of the subject towards
// the object. No history is kept.
func (e *Engine) ApplyRelationship(updates []models.Update) {
	for _, u := range updates {
		c := e.characterByID(u.CharID)
		if c == nil {
			e.logUnknownCharacter(u)
			continue
		}
		c.AddRelationship(u.OtherCharID, u.Value)
	}
}

// ApplyInventory adds items (lowercased) or removes them. Removing an item
// a character does not hold is a no-op, not an error: the narrative often
// describes losing things it never granted.
func (e *Engine) ApplyInventory(updates []models.Update) {
	for _, u := range updates {
		c := e.characterByID(u.CharID)
		if c == nil {
			e.logUnknownCharacter(u)
			continue
		}
		if u.Op == models.OpIncrease {
			c.AddInventory(u.Value)
		} else {
			c.RemoveInventory(u.Value)
		}
	}
}

// ApplyHP applies health changes, clamped to [0,100], with the damping rule:
// the applied delta is min(requested, rand(1, hp/5)), and a character at
// 5 hp or below only ever moves by 1. The damping deliberately shrinks
// narrative-driven swings too, so flavor text cannot kill a character
// outright; death still happens, one sliver at a time.
func (e *Engine) ApplyHP(updates []models.Update) {
	for _, u := range updates {
		c := e.characterByID(u.CharID)
		if c == nil {
			e.logUnknownCharacter(u)
			continue
		}
		requested, err := strconv.Atoi(u.Value)
		if err != nil {
			e.logger.Warn("HP update skipped: invalid amount",
				zap.Int("char_id", u.CharID), zap.String("amount", u.Value),
				zap.Error(models.ErrInvalidNumeric))
			continue
		}
		delta := e.dampHPDelta(c, requested)
		if u.Op == models.OpIncrease {
			c.IncreaseHP(delta)
		} else {
			c.DecreaseHP(delta)
		}
	}
}

// dampHPDelta caps a requested HP change by a random fraction of the
// character's current health.
func (e *Engine) dampHPDelta(c *models.Character, requested int) int {
	if c.HP() <= 5 {
		return 1
	}
	limit := c.HP() / 5
	if limit < 1 {
		limit = 1
	}
	randomCap := e.rng.Intn(limit) + 1 // uniform in [1, hp/5]
	if requested < randomCap {
		return requested
	}
	return randomCap
}

// ApplyLocation moves the referenced characters. When the main character
// moves, the new location is recorded in the world's visited list and the
// caller is told to refresh the environment description (an asynchronous
// collaborator concern).
func (e *Engine) ApplyLocation(updates []models.Update) (mainMoved bool) {
	for _, u := range updates {
		c := e.characterByID(u.CharID)
		if c == nil {
			e.logUnknownCharacter(u)
			continue
		}
		c.CurrentLocation = u.Value
		if e.main != nil && u.CharID == e.main.ID {
			e.world.AddLocation(u.Value)
			mainMoved = true
		}
	}
	return mainMoved
}

// SetEnvironment replaces the world's scene description wholesale.
func (e *Engine) SetEnvironment(description string) {
	e.world.Environment = description
}

func (e *Engine) logUnknownCharacter(u models.Update) {
	e.logger.Warn("Update skipped: character not in roster",
		zap.String("attribute", string(u.Kind)),
		zap.Int("char_id", u.CharID),
		zap.Error(models.ErrCharacterNotFound),
	)
}
