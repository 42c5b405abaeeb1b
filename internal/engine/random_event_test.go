package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"rpg-engine/shared/models"
)

// stubOracle answers random-event questions with canned values.
type stubOracle struct {
	condition    string
	relationship string
	item         string
	positiveSeen *bool
}

func (o *stubOracle) NewCondition(_ context.Context, _ string, positive bool) (string, error) {
	if o.positiveSeen != nil {
		*o.positiveSeen = positive
	}
	return o.condition, nil
}

func (o *stubOracle) NewRelationship(_ context.Context, _ string, positive bool) (string, error) {
	if o.positiveSeen != nil {
		*o.positiveSeen = positive
	}
	return o.relationship, nil
}

func (o *stubOracle) NewItem(_ context.Context, _ *models.World) (string, error) {
	return o.item, nil
}

func luckyMain() *models.Character {
	// Luck 20 makes the threshold negative, so every roll is positive.
	return &models.Character{
		ID:                1,
		Name:              "Bob",
		PhysicalCondition: "Injured",
		Stats:             map[string]int{models.StatHP: 100, models.StatLuck: 20, models.StatCha: 10},
	}
}

func TestRandomEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("condition effect when nothing else applies", func(t *testing.T) {
		e := newTestEngine(t)
		main := luckyMain()
		// No money, no relationships, no inventory: the re-pick loop must
		// settle on the condition effect.
		e.SetMainCharacter(main)

		var positive bool
		oracle := &stubOracle{condition: "Recovered", positiveSeen: &positive}
		ev, err := e.RandomEvent(ctx, oracle, 15)
		assert.NoError(t, err)
		assert.NotNil(t, ev)
		assert.Equal(t, EventCondition, ev.Status)
		assert.Equal(t, "Recovered", main.PhysicalCondition)
		assert.Contains(t, ev.Description, "went from Injured to Recovered")
		assert.True(t, positive)
	})

	t.Run("money effect amount stays within bounds", func(t *testing.T) {
		e := newTestEngine(t)
		main := luckyMain()
		main.Money = 40
		e.SetMainCharacter(main)

		// Condition cannot improve, so the loop lands on money eventually.
		oracle := &stubOracle{}
		ev, err := e.RandomEvent(ctx, oracle, 50)
		assert.NoError(t, err)
		assert.NotNil(t, ev)
		assert.Equal(t, EventIncreaseMoney, ev.Status)
		assert.GreaterOrEqual(t, ev.Amount, 21) // money/2+1
		assert.LessOrEqual(t, ev.Amount, 41)    // money+1
		// Money events are narrated, not applied here.
		assert.Equal(t, 40.0, main.Money)
	})

	t.Run("no applicable effect yields no event", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(luckyMain())

		oracle := &stubOracle{} // condition answer empty, nothing else applies
		ev, err := e.RandomEvent(ctx, oracle, 15)
		assert.NoError(t, err)
		assert.Nil(t, ev)
	})

	t.Run("relationship effect mutates the label", func(t *testing.T) {
		e := newTestEngine(t)
		main := luckyMain()
		main.Relationship = map[int]string{2: "Strangers"}
		e.SetMainCharacter(main)

		oracle := &stubOracle{relationship: "Friends"}
		ev, err := e.RandomEvent(ctx, oracle, 50)
		assert.NoError(t, err)
		assert.NotNil(t, ev)
		assert.Equal(t, EventRelationship, ev.Status)
		assert.Equal(t, "Friends", main.Relationship[2])
	})
}

func TestDoubleUpdateCheck(t *testing.T) {
	t.Run("money drift is corrected", func(t *testing.T) {
		e := newTestEngine(t)
		main := luckyMain()
		main.Money = 100 // update cycle applied something else
		e.SetMainCharacter(main)

		e.DoubleUpdateCheck(&Event{Status: EventIncreaseMoney, Amount: 30}, 40)
		assert.Equal(t, 70.0, main.Money)
	})

	t.Run("matching money is left alone", func(t *testing.T) {
		e := newTestEngine(t)
		main := luckyMain()
		main.Money = 70
		e.SetMainCharacter(main)

		e.DoubleUpdateCheck(&Event{Status: EventDecreaseMoney, Amount: 30}, 100)
		assert.Equal(t, 70.0, main.Money)
	})

	t.Run("gained item is added when missing", func(t *testing.T) {
		e := newTestEngine(t)
		main := luckyMain()
		e.SetMainCharacter(main)

		e.DoubleUpdateCheck(&Event{Status: EventGainItem, Item: "Compass"}, 0)
		assert.Contains(t, main.Inventory, "compass")
	})

	t.Run("lost item is removed when still held", func(t *testing.T) {
		e := newTestEngine(t)
		main := luckyMain()
		main.Inventory = []string{"compass"}
		e.SetMainCharacter(main)

		e.DoubleUpdateCheck(&Event{Status: EventLoseItem, Item: "Compass"}, 0)
		assert.NotContains(t, main.Inventory, "compass")
	})

	t.Run("nil event is ignored", func(t *testing.T) {
		e := newTestEngine(t)
		main := luckyMain()
		e.SetMainCharacter(main)
		e.DoubleUpdateCheck(nil, 0)
		assert.Equal(t, 0.0, main.Money)
	})
}
