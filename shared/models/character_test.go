package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rpg-engine/shared/models"
)

func TestCharacterHP(t *testing.T) {
	t.Run("increase clamps at the maximum", func(t *testing.T) {
		c := &models.Character{Stats: map[string]int{models.StatHP: 95}}
		c.IncreaseHP(10)
		assert.Equal(t, models.MaxHP, c.HP())
	})

	t.Run("decrease clamps at zero", func(t *testing.T) {
		c := &models.Character{Stats: map[string]int{models.StatHP: 5}}
		c.DecreaseHP(10)
		assert.Equal(t, models.MinHP, c.HP())
	})

	t.Run("changes inside the bounds pass through", func(t *testing.T) {
		c := &models.Character{Stats: map[string]int{models.StatHP: 50}}
		c.DecreaseHP(7)
		assert.Equal(t, 43, c.HP())
		c.IncreaseHP(3)
		assert.Equal(t, 46, c.HP())
	})
}

func TestCharacterMoney(t *testing.T) {
	c := &models.Character{Money: 10}
	c.IncreaseMoney(0.1)
	c.IncreaseMoney(0.2)
	assert.InDelta(t, 10.3, c.Money, 0.0001)

	c.DecreaseMoney(10.3)
	assert.InDelta(t, 0, c.Money, 0.0001)
}

func TestCharacterInventory(t *testing.T) {
	t.Run("additions are lowercased", func(t *testing.T) {
		c := &models.Character{}
		c.AddInventory("Rusty Sword")
		assert.Equal(t, []string{"rusty sword"}, c.Inventory)
	})

	t.Run("removal takes the first occurrence only", func(t *testing.T) {
		c := &models.Character{Inventory: []string{"rope", "rope"}}
		c.RemoveInventory("rope")
		assert.Equal(t, []string{"rope"}, c.Inventory)
	})

	t.Run("removing an absent item is a no-op", func(t *testing.T) {
		c := &models.Character{Inventory: []string{"rope"}}
		c.RemoveInventory("torch")
		assert.Equal(t, []string{"rope"}, c.Inventory)
	})

	t.Run("holding check ignores case", func(t *testing.T) {
		c := &models.Character{Inventory: []string{"rusty sword"}}
		assert.True(t, c.HasInventory("Rusty Sword"))
		assert.False(t, c.HasInventory("sword"))
	})
}

func TestCharacterIsDeceased(t *testing.T) {
	for _, condition := range []string{"Deceased", "deceased", "Dead", "DEAD"} {
		c := &models.Character{PhysicalCondition: condition}
		assert.True(t, c.IsDeceased(), condition)
	}
	for _, condition := range []string{"Healthy", "Badly wounded", ""} {
		c := &models.Character{PhysicalCondition: condition}
		assert.False(t, c.IsDeceased(), condition)
	}
}

func TestWorldAddLocation(t *testing.T) {
	w := &models.World{}
	w.AddLocation("Harbor")
	w.AddLocation("Old Mill")
	w.AddLocation("Harbor")
	assert.Equal(t, []string{"Harbor", "Old Mill"}, w.Locations)
}

func TestTimelineAddEvent(t *testing.T) {
	tl := &models.Timeline{}
	tl.AddEvent("The hero arrives.")
	tl.AddEvent("The hero arrives.")
	tl.AddEvent("A storm hits the coast.")
	assert.Equal(t, []string{"The hero arrives.", "A storm hits the coast."}, tl.KeyEvents)
}
