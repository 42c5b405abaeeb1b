package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"rpg-engine/shared/models"
)

func npc(id int, name string, hp int, condition string) *models.Character {
	return &models.Character{
		ID:                id,
		Name:              name,
		PhysicalCondition: condition,
		Stats:             map[string]int{models.StatHP: hp},
	}
}

func TestCheckDeceased(t *testing.T) {
	t.Run("everyone consistent and alive", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))
		e.AddCharacter(npc(2, "Josh", 80, models.ConditionHealthy))

		mainDead, msg := e.CheckDeceased("fantasy")
		assert.False(t, mainDead)
		assert.Empty(t, msg)
	})

	t.Run("npc at zero hp is forced deceased", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))
		e.AddCharacter(npc(2, "Josh", 0, "Injured"))

		mainDead, msg := e.CheckDeceased("fantasy")
		assert.False(t, mainDead)
		assert.Equal(t, "Josh (ID: 2)", msg)
		assert.Equal(t, models.ConditionDeceased, e.Characters()[0].PhysicalCondition)
		assert.Equal(t, 0, e.Characters()[0].HP())
	})

	t.Run("deceased condition with leftover hp is zeroed", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))
		e.AddCharacter(npc(2, "Josh", 35, "Dead"))

		_, msg := e.CheckDeceased("fantasy")
		assert.Equal(t, "Josh (ID: 2)", msg)
		assert.Equal(t, 0, e.Characters()[0].HP())
	})

	t.Run("multiple npcs are listed in roster order", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))
		e.AddCharacter(npc(2, "Josh", 0, "Injured"))
		e.AddCharacter(npc(3, "Mira", 0, "Wounded"))

		_, msg := e.CheckDeceased("fantasy")
		assert.Equal(t, "Josh (ID: 2), Mira (ID: 3)", msg)
	})

	t.Run("main death asks to end the story", func(t *testing.T) {
		e := newTestEngine(t)
		main := mainChar(0)
		e.SetMainCharacter(main)

		mainDead, msg := e.CheckDeceased("cyberpunk")
		assert.True(t, mainDead)
		assert.Equal(t, "The main character Bob (ID: 1) is now deceased, please end the cyberpunk story.", msg)
		assert.Equal(t, models.ConditionDeceased, main.PhysicalCondition)
	})

	t.Run("main death plus npc death", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(0))
		e.AddCharacter(npc(2, "Josh", 0, "Injured"))

		mainDead, msg := e.CheckDeceased("fantasy")
		assert.True(t, mainDead)
		assert.True(t, strings.Contains(msg, "please end the fantasy story."))
		assert.True(t, strings.Contains(msg, "The character Josh (ID: 2) is also now deceased"))
	})

	t.Run("already consistent death is not reported again", func(t *testing.T) {
		e := newTestEngine(t)
		e.SetMainCharacter(mainChar(100))
		e.AddCharacter(npc(2, "Josh", 0, models.ConditionDeceased))

		mainDead, msg := e.CheckDeceased("fantasy")
		assert.False(t, mainDead)
		assert.Empty(t, msg)
	})

	t.Run("main already consistently dead reports dead without message", func(t *testing.T) {
		e := newTestEngine(t)
		main := mainChar(0)
		main.PhysicalCondition = models.ConditionDeceased
		e.SetMainCharacter(main)

		mainDead, msg := e.CheckDeceased("fantasy")
		assert.True(t, mainDead)
		assert.Empty(t, msg)
	})
}
