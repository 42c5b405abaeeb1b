package engine

import (
	"fmt"
	"strings"

	"rpg-engine/shared/models"
)

// CheckDeceased runs the death-consistency pass over every character after a
// turn's updates have been applied: HP 0 and a deceased condition must imply
// each other. A character with HP 0 but a living condition, or a deceased
// condition but nonzero HP, is forced to Deceased with HP 0. Deceased is
// terminal; nothing ever transitions a character back.
//
// It returns whether the main character is dead and a human-readable notice
// naming the newly deceased, phrased for the narrative generator to fold
// into the next prompt. Characters already consistent as dead are not
// reported again.
func (e *Engine) CheckDeceased(genre string) (mainDead bool, message string) {
	var sb strings.Builder
	var newlyDead []*models.Character

	if e.main != nil {
		switch {
		case e.main.HP() == 0 && e.main.IsDeceased():
			mainDead = true
		case e.main.HP() == 0 || e.main.IsDeceased():
			e.forceDeceased(e.main)
			fmt.Fprintf(&sb, "The main character %s (ID: %d) is now deceased, please end the %s story.",
				e.main.Name, e.main.ID, genre)
			mainDead = true
		}
	}

	for _, npc := range e.npcs {
		dead := npc.IsDeceased()
		if (npc.HP() == 0) == dead {
			continue
		}
		e.forceDeceased(npc)
		newlyDead = append(newlyDead, npc)
	}

	// When the main character died the NPC deaths are spelled out here; when
	// they are alive the bare name list goes back and the continuation prompt
	// wraps it in its own justification clause.
	if len(newlyDead) > 0 {
		if sb.Len() > 0 {
			if len(newlyDead) == 1 {
				fmt.Fprintf(&sb, "\nThe character %s (ID: %d) is also now deceased, please justify their death in the story.",
					newlyDead[0].Name, newlyDead[0].ID)
			} else {
				sb.WriteString("\nThe characters ")
				writeCharList(&sb, newlyDead)
				sb.WriteString(" are also now deceased, please justify their deaths in the story.")
			}
		} else {
			writeCharList(&sb, newlyDead)
		}
	}

	return mainDead, strings.TrimSpace(sb.String())
}

func (e *Engine) forceDeceased(c *models.Character) {
	c.PhysicalCondition = models.ConditionDeceased
	c.DecreaseHP(models.MaxHP)
}

func writeCharList(sb *strings.Builder, chars []*models.Character) {
	for i, c := range chars {
		fmt.Fprintf(sb, "%s (ID: %d)", c.Name, c.ID)
		if i != len(chars)-1 {
			sb.WriteString(", ")
		}
	}
}
