package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"rpg-engine/shared/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(zap.NewNop(), rand.New(rand.NewSource(1)))
}

func mainChar(hp int) *models.Character {
	return &models.Character{
		ID:                1,
		Name:              "Bob",
		PhysicalCondition: models.ConditionHealthy,
		Money:             50,
		Stats:             map[string]int{models.StatHP: hp, models.StatLuck: 10, models.StatCha: 10},
	}
}

func TestApplyPhysicalCondition(t *testing.T) {
	e := newTestEngine(t)
	e.SetMainCharacter(mainChar(100))
	e.AddCharacter(&models.Character{ID: 2, Name: "Josh", Stats: map[string]int{models.StatHP: 80}})

	e.ApplyPhysicalCondition([]models.Update{
		{Kind: models.KindPhysicalCondition, CharID: 1, Value: "Injured"},
	})

	assert.Equal(t, "Injured", e.MainCharacter().PhysicalCondition)
	// Untouched NPC with an empty condition defaults to healthy.
	assert.Equal(t, models.ConditionHealthy, e.Characters()[0].PhysicalCondition)
}

func TestApplyMoney(t *testing.T) {
	t.Run("rounds to two decimals", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))

		e.ApplyMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpIncrease, Value: "10.119"},
		})
		assert.InDelta(t, 60.12, e.MainCharacter().Money, 0.0001)
	})

	t.Run("decrease", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))

		e.ApplyMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpDecrease, Value: "12.25"},
		})
		assert.Equal(t, 37.75, e.MainCharacter().Money)
	})

	t.Run("invalid amount is skipped", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))

		e.ApplyMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpIncrease, Value: "ten"},
		})
		assert.Equal(t, 50.0, e.MainCharacter().Money)
	})

	t.Run("unknown character is skipped", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))

		e.ApplyMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 9, Op: models.OpIncrease, Value: "10"},
		})
		assert.Equal(t, 50.0, e.MainCharacter().Money)
	})
}

func TestApplyRelationship(t *testing.T) {
	e := newTestEngine(t)
	e.SetMainCharacter(mainChar(100))

	e.ApplyRelationship([]models.Update{
		{Kind: models.KindRelationship, CharID: 1, OtherCharID: 2, Value: "Allies"},
	})
	assert.Equal(t, "Allies", e.MainCharacter().Relationship[2])

	// Upsert replaces the previous label.
	e.ApplyRelationship([]models.Update{
		{Kind: models.KindRelationship, CharID: 1, OtherCharID: 2, Value: "Rivals"},
	})
	assert.Equal(t, "Rivals", e.MainCharacter().Relationship[2])
}

func TestApplyInventory(t *testing.T) {
	e := newTestEngine(t)
	main := mainChar(100)
	main.Inventory = []string{"rope"}
	e.SetMainCharacter(main)

	t.Run("items are stored lowercased", func(t *testing.T) {
		e.ApplyInventory([]models.Update{
			{Kind: models.KindInventory, CharID: 1, Op: models.OpIncrease, Value: "Rusty Sword"},
		})
		assert.Contains(t, main.Inventory, "rusty sword")
	})

	t.Run("removing an absent item is a no-op", func(t *testing.T) {
		before := append([]string{}, main.Inventory...)
		e.ApplyInventory([]models.Update{
			{Kind: models.KindInventory, CharID: 1, Op: models.OpDecrease, Value: "torch"},
		})
		assert.Equal(t, before, main.Inventory)
	})

	t.Run("removal matches case-insensitively", func(t *testing.T) {
		e.ApplyInventory([]models.Update{
			{Kind: models.KindInventory, CharID: 1, Op: models.OpDecrease, Value: "Rope"},
		})
		assert.NotContains(t, main.Inventory, "rope")
	})
}

func TestApplyHP(t *testing.T) {
	t.Run("damage is damped to a fraction of current health", func(t *testing.T) {
		e := newTestEngine(t)
		main := mainChar(100)
		e.SetMainCharacter(main)

		e.ApplyHP([]models.Update{
			{Kind: models.KindHP, CharID: 1, Op: models.OpDecrease, Value: "60"},
		})
		applied := 100 - main.HP()
		assert.GreaterOrEqual(t, applied, 1)
		assert.LessOrEqual(t, applied, 20) // hp/5 of 100
	})

	t.Run("small requests pass through undamped", func(t *testing.T) {
		e := newTestEngine(t)
		main := mainChar(100)
		e.SetMainCharacter(main)

		e.ApplyHP([]models.Update{
			{Kind: models.KindHP, CharID: 1, Op: models.OpDecrease, Value: "1"},
		})
		assert.Equal(t, 99, main.HP())
	})

	t.Run("critical health moves by exactly one", func(t *testing.T) {
		e := newTestEngine(t)
		main := mainChar(5)
		e.SetMainCharacter(main)

		e.ApplyHP([]models.Update{
			{Kind: models.KindHP, CharID: 1, Op: models.OpDecrease, Value: "40"},
		})
		assert.Equal(t, 4, main.HP())
	})

	t.Run("healing clamps at the maximum", func(t *testing.T) {
		e := newTestEngine(t)
		main := mainChar(99)
		e.SetMainCharacter(main)

		e.ApplyHP([]models.Update{
			{Kind: models.KindHP, CharID: 1, Op: models.OpIncrease, Value: "1"},
		})
		assert.Equal(t, models.MaxHP, main.HP())
	})

	t.Run("invalid amount is skipped", func(t *testing.T) {
		e := newTestEngine(t)
		main := mainChar(50)
		e.SetMainCharacter(main)

		e.ApplyHP([]models.Update{
			{Kind: models.KindHP, CharID: 1, Op: models.OpDecrease, Value: "lots"},
		})
		assert.Equal(t, 50, main.HP())
	})
}

func TestApplyLocation(t *testing.T) {
	e := newTestEngine(t)
	e.SetMainCharacter(mainChar(100))
	e.AddCharacter(&models.Character{ID: 2, Name: "Josh"})

	t.Run("npc move does not touch the world", func(t *testing.T) {
		mainMoved := e.ApplyLocation([]models.Update{
			{Kind: models.KindLocation, CharID: 2, Value: "Harbor"},
		})
		assert.False(t, mainMoved)
		assert.Empty(t, e.World().Locations)
		assert.Equal(t, "Harbor", e.Characters()[0].CurrentLocation)
	})

	t.Run("main move records the location", func(t *testing.T) {
		mainMoved := e.ApplyLocation([]models.Update{
			{Kind: models.KindLocation, CharID: 1, Value: "Old Mill"},
		})
		assert.True(t, mainMoved)
		assert.Equal(t, []string{"Old Mill"}, e.World().Locations)
	})

	t.Run("revisited location is not duplicated", func(t *testing.T) {
		e.ApplyLocation([]models.Update{
			{Kind: models.KindLocation, CharID: 1, Value: "Old Mill"},
		})
		assert.Equal(t, []string{"Old Mill"}, e.World().Locations)
	})
}

func TestApplySkipDiagnostics(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := New(zap.New(core), rand.New(rand.NewSource(1)))
	e.SetMainCharacter(mainChar(100))

	t.Run("unknown character carries the roster error", func(t *testing.T) {
		e.ApplyMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 9, Op: models.OpIncrease, Value: "10"},
		})
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, models.ErrCharacterNotFound.Error(), entries[0].ContextMap()["error"])
	})

	t.Run("invalid money amount carries the numeric error", func(t *testing.T) {
		e.ApplyMoney([]models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpIncrease, Value: "ten"},
		})
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, models.ErrInvalidNumeric.Error(), entries[0].ContextMap()["error"])
	})

	t.Run("invalid hp amount carries the numeric error", func(t *testing.T) {
		e.ApplyHP([]models.Update{
			{Kind: models.KindHP, CharID: 1, Op: models.OpDecrease, Value: "a lot"},
		})
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, models.ErrInvalidNumeric.Error(), entries[0].ContextMap()["error"])
	})
}
