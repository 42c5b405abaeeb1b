package prompts

import (
	"fmt"
	"sort"
	"strings"

	"rpg-engine/shared/models"
)

// FormatCharacter renders the full JSON-like typed form of a character used
// inside story prompts. The type annotations are deliberate: they teach the
// model which value shapes to echo back in update lines.
func FormatCharacter(c *models.Character) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	sb.WriteString(fmt.Sprintf("\"id\": int \"%d\"\n", c.ID))
	sb.WriteString(fmt.Sprintf("\"name\": str %q\n", c.Name))
	sb.WriteString(fmt.Sprintf("\"physical_condition\": str %q\n", c.PhysicalCondition))
	sb.WriteString(fmt.Sprintf("\"occupation\": str %q\n", c.Occupation))
	sb.WriteString(fmt.Sprintf("\"money\": float %v\n", c.Money))
	sb.WriteString(fmt.Sprintf("\"relationship\": Dict[other_char_id: int, relationship_type: str] %s\n", formatRelationship(c.Relationship)))
	sb.WriteString(fmt.Sprintf("\"personality\": List[str] %s\n", formatStringList(c.Personality)))
	sb.WriteString(fmt.Sprintf("\"inventory\": List[str] %s\n", formatStringList(c.Inventory)))
	sb.WriteString(fmt.Sprintf("\"stats\": Dict[stat: str, val: int] %s\n", formatStats(c.Stats)))
	sb.WriteString(fmt.Sprintf("\"current_location\": str %q\n", c.CurrentLocation))
	sb.WriteString(fmt.Sprintf("\"appearance\": str %q", c.Appearance))
	sb.WriteString("}")
	return sb.String()
}

// FormatWorld renders the world dictionary for story prompts.
func FormatWorld(w *models.World) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	sb.WriteString(fmt.Sprintf("\"rules\": List[str] %s\n", formatStringList(w.Rules)))
	sb.WriteString(fmt.Sprintf("\"genre\": str %q\n", w.Genre))
	sb.WriteString(fmt.Sprintf("\"environment\": str %q\n", w.Environment))
	sb.WriteString(fmt.Sprintf("\"locations\": List[str] %s\n", formatStringList(w.Locations)))
	sb.WriteString("}")
	return sb.String()
}

// FormatTimeline renders the timeline dictionary for story prompts.
func FormatTimeline(t *models.Timeline) string {
	return fmt.Sprintf("{\n\"key_events\": List[str] %s\n}", formatStringList(t.KeyEvents))
}

// CharacterContext renders the per-attribute character listing handed to the
// extraction prompts: id, name and only the attribute under extraction, for
// the main character first and then every NPC.
func CharacterContext(kind models.AttributeKind, main *models.Character, npcs []*models.Character) string {
	var sb strings.Builder
	writeCharEntry(&sb, kind, main, true)
	for _, npc := range npcs {
		sb.WriteString(",")
		writeCharEntry(&sb, kind, npc, false)
	}
	return sb.String()
}

func writeCharEntry(sb *strings.Builder, kind models.AttributeKind, c *models.Character, isMain bool) {
	sb.WriteString("\n{\n")
	sb.WriteString(fmt.Sprintf(" \"id\": %d\n", c.ID))
	sb.WriteString(fmt.Sprintf(" \"name\": %q", c.Name))
	switch kind {
	case models.KindPhysicalCondition:
		sb.WriteString(fmt.Sprintf("\n \"physical_condition\": str %q", c.PhysicalCondition))
		// NPC listings for condition also expose hp so the model keeps
		// injuries and health coherent.
		if !isMain {
			sb.WriteString(fmt.Sprintf("\n \"hp\": int %d", c.HP()))
		}
	case models.KindMoney:
		sb.WriteString(fmt.Sprintf("\n \"money\": float %v", c.Money))
	case models.KindRelationship:
		sb.WriteString(fmt.Sprintf("\n \"relationship\": Dict[other_char_id: int, relationship_type: str] %s", formatRelationship(c.Relationship)))
	case models.KindInventory:
		sb.WriteString(fmt.Sprintf("\n \"inventory\": List[str] %s", formatStringList(c.Inventory)))
	case models.KindHP:
		sb.WriteString(fmt.Sprintf("\n \"physical_condition\": str %q", c.PhysicalCondition))
		sb.WriteString(fmt.Sprintf("\n \"hp\": int %d", c.HP()))
	default: // current_location
		sb.WriteString(fmt.Sprintf("\n \"current_location\": str %q", c.CurrentLocation))
	}
	sb.WriteString("\n}")
}

// RelationshipToNames renders a character's relationship map with names in
// place of IDs, for surfaces that face the player.
func RelationshipToNames(c *models.Character, roster models.Roster) string {
	ids := make([]int, 0, len(c.Relationship))
	for id := range c.Relationship {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var sb strings.Builder
	sb.WriteString("{")
	for i, id := range ids {
		name := fmt.Sprintf("ID %d", id)
		if idx := roster.IndexOf(id); idx >= 0 {
			name = roster.Names[idx]
		}
		sb.WriteString(fmt.Sprintf("%s: %s", name, c.Relationship[id]))
		if i != len(ids)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// ReplaceIDsWithNames rewrites "ID {id}" placeholders in a message with the
// matching character names.
func ReplaceIDsWithNames(input string, roster models.Roster) string {
	for i, id := range roster.IDs {
		input = strings.ReplaceAll(input, fmt.Sprintf("ID %d", id), roster.Names[i])
	}
	return input
}

func formatStringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func formatRelationship(rel map[int]string) string {
	if len(rel) == 0 {
		return "{}"
	}
	ids := make([]int, 0, len(rel))
	for id := range rel {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d: %q", id, rel[id])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatStats(stats map[string]int) string {
	if len(stats) == 0 {
		return "{}"
	}
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%q: %d", name, stats[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
