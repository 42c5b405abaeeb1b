package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rpg-engine/shared/models"
)

func TestCheckMoney(t *testing.T) {
	roster := models.Roster{
		IDs:   []int{1, 2},
		Names: []string{"Bob", "Josh"},
		Money: []float64{60, 20},
	}

	t.Run("valid batch", func(t *testing.T) {
		valid, offenders := CheckMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpDecrease, Value: "60"},
			{Kind: models.KindMoney, CharID: 2, Op: models.OpIncrease, Value: "5"},
		}, roster)
		assert.True(t, valid)
		assert.Empty(t, offenders)
	})

	t.Run("overdraft flags the character", func(t *testing.T) {
		valid, offenders := CheckMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpDecrease, Value: "1000"},
		}, roster)
		assert.False(t, valid)
		assert.Equal(t, []models.CharRef{{ID: 1, Name: "Bob"}}, offenders)
	})

	t.Run("increases never overdraft", func(t *testing.T) {
		valid, _ := CheckMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 2, Op: models.OpIncrease, Value: "99999"},
		}, roster)
		assert.True(t, valid)
	})

	t.Run("each offender reported once", func(t *testing.T) {
		valid, offenders := CheckMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpDecrease, Value: "70"},
			{Kind: models.KindMoney, CharID: 1, Op: models.OpDecrease, Value: "80"},
			{Kind: models.KindMoney, CharID: 2, Op: models.OpDecrease, Value: "30"},
		}, roster)
		assert.False(t, valid)
		assert.Equal(t, []models.CharRef{{ID: 1, Name: "Bob"}, {ID: 2, Name: "Josh"}}, offenders)
	})

	t.Run("unparseable amount is an offender", func(t *testing.T) {
		valid, offenders := CheckMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 2, Op: models.OpDecrease, Value: "some gold"},
		}, roster)
		assert.False(t, valid)
		assert.Equal(t, []models.CharRef{{ID: 2, Name: "Josh"}}, offenders)
	})

	t.Run("balances are never mutated", func(t *testing.T) {
		CheckMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpDecrease, Value: "10"},
		}, roster)
		assert.Equal(t, []float64{60, 20}, roster.Money)
	})

	t.Run("non-money updates are ignored", func(t *testing.T) {
		valid, _ := CheckMoney([]models.Update{
			{Kind: models.KindHP, CharID: 1, Op: models.OpDecrease, Value: "1000"},
		}, roster)
		assert.True(t, valid)
	})
}
