package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rpg-engine/shared/models"
)

func TestSplitLine(t *testing.T) {
	t.Run("condition splits on first equals", func(t *testing.T) {
		parsed, err := splitLine(models.KindPhysicalCondition, "1=Badly wounded")
		assert.NoError(t, err)
		assert.Equal(t, "1", parsed.subject)
		assert.Equal(t, "Badly wounded", parsed.value)
	})

	t.Run("location value keeps later equals", func(t *testing.T) {
		parsed, err := splitLine(models.KindLocation, "2=Sector 7=G")
		assert.NoError(t, err)
		assert.Equal(t, "2", parsed.subject)
		assert.Equal(t, "Sector 7=G", parsed.value)
	})

	t.Run("relationship splits id then comma", func(t *testing.T) {
		parsed, err := splitLine(models.KindRelationship, "1=2, Partners")
		assert.NoError(t, err)
		assert.Equal(t, "1", parsed.subject)
		assert.Equal(t, "2", parsed.object)
		assert.Equal(t, "Partners", parsed.value)
	})

	t.Run("relationship without comma is unsalvageable", func(t *testing.T) {
		_, err := splitLine(models.KindRelationship, "1=2 Partners")
		assert.ErrorIs(t, err, models.ErrLineUnsalvageable)
	})

	t.Run("money increase", func(t *testing.T) {
		parsed, err := splitLine(models.KindMoney, "1+=12.50")
		assert.NoError(t, err)
		assert.Equal(t, models.OpIncrease, parsed.op)
		assert.Equal(t, "12.50", parsed.value)
	})

	t.Run("hp decrease", func(t *testing.T) {
		parsed, err := splitLine(models.KindHP, "3-=15")
		assert.NoError(t, err)
		assert.Equal(t, models.OpDecrease, parsed.op)
		assert.Equal(t, "15", parsed.value)
	})

	t.Run("increase wins when both operators appear", func(t *testing.T) {
		parsed, err := splitLine(models.KindInventory, "1+=two-=handed sword")
		assert.NoError(t, err)
		assert.Equal(t, models.OpIncrease, parsed.op)
		assert.Equal(t, "two-=handed sword", parsed.value)
	})

	t.Run("missing operator is unsalvageable", func(t *testing.T) {
		_, err := splitLine(models.KindMoney, "1 gained 10 gold")
		assert.ErrorIs(t, err, models.ErrLineUnsalvageable)
	})

	t.Run("parts are normalized", func(t *testing.T) {
		parsed, err := splitLine(models.KindInventory, "\"1\"+=\"rusty_sword\"")
		assert.NoError(t, err)
		assert.Equal(t, "1", parsed.subject)
		assert.Equal(t, "rusty sword", parsed.value)
	})
}

func TestValidateNumeric(t *testing.T) {
	t.Run("money accepts decimals", func(t *testing.T) {
		assert.Equal(t, "12.50", validateNumeric(models.KindMoney, "12.50"))
	})

	t.Run("money rejects words", func(t *testing.T) {
		assert.Equal(t, falseSentinel, validateNumeric(models.KindMoney, "ten gold"))
	})

	t.Run("money rejects negatives", func(t *testing.T) {
		assert.Equal(t, falseSentinel, validateNumeric(models.KindMoney, "-5"))
	})

	t.Run("hp rejects decimals", func(t *testing.T) {
		assert.Equal(t, falseSentinel, validateNumeric(models.KindHP, "7.5"))
	})

	t.Run("hp accepts integers", func(t *testing.T) {
		assert.Equal(t, "7", validateNumeric(models.KindHP, "7"))
	})

	t.Run("non numeric kinds pass through", func(t *testing.T) {
		assert.Equal(t, "Injured", validateNumeric(models.KindPhysicalCondition, "Injured"))
	})
}
