package prompts

import (
	"fmt"
	"strings"
)

// One-shot prompts: each of these starts a fresh conversation with no
// history, mirroring how the narrative layer asks small self-contained
// questions (world rules, environment lines, random-event rewrites).

// RulesSystemPrompt asks for 3-5 unbreakable genre rules, one per line.
const RulesSystemPrompt = `Generate concise and unbreakable rules for a given story genre. The input will be a specific story genre, and the output should consist of 3 to 5 rules that guide the entire storyline within that genre.

# Output Format

- Provide 3 to 5 rules as a list, one rule per line, each starting with "-".
- Each rule should be a single, complete sentence.
- Ensure rules are general yet strict enough to guide any storyline in the specified genre.`

// EnvironmentSystemPrompt asks for a one-sentence environment description.
const EnvironmentSystemPrompt = `Generate a one-sentence description of an environment based on a given genre or story excerpt.

# Output Format

A single sentence that effectively describes the environment.`

// KeyEventSystemPrompt asks for a one-sentence summary of the latest story
// events for the timeline.
const KeyEventSystemPrompt = `**Steps:**

1. You are given the latest part of an interactive story.
2. Summarize the key event of that part in ONE short sentence.
3. Return ONLY the summary sentence.`

// ConditionSystemPrompt builds the instructions used by random events to
// flip a character's physical condition. The reply is either a new condition
// or the literal "False" when no flip applies (already positive/negative, or
// the character is dead).
func ConditionSystemPrompt(positive bool) string {
	if positive {
		return `**Steps:**

1. You will be given the current physical condition of a character.
2. Determine whether the condition is a positive one or a negative one.
    a. If it is a negative condition. Return a new positive condition ONLY.
    b. If it is a positive condition. Return "False" ONLY.
        i. If the condition indicates the character is dead. Return "False" ONLY`
	}
	return `**Steps:**

1. You will be given the current physical condition of a character.
2. Determine whether the condition is a positive one or a negative one.
    a. If it is a negative condition. Return "False" ONLY.
    b. If it is a positive condition. Return a random negative condition ONLY.
        i. If the condition indicates the character is dead. Return "False" ONLY`
}

// RelationshipShiftSystemPrompt builds the instructions used by random
// events to deepen or sour a relationship label.
func RelationshipShiftSystemPrompt(positive bool) string {
	direction := "deepened"
	tone := "positive"
	if !positive {
		direction = "soured"
		tone = "negative"
	}
	return fmt.Sprintf(`**Steps:**

1. You will be given a string that represents a relationship the main character has with another character.
2. The relationship has been %s due to an event.
3. Please update the relationship to something %s.
4. Return ONLY the updated relationship.`, direction, tone)
}

// NewItemSystemPrompt asks for one item name fitting the world.
const NewItemSystemPrompt = `**Steps:**

1. You will be given a JSON dictionary that represents what the world of a story is like.
2. Please generate a useful item that you might find in the world.
3. Return ONLY the name of the item.`

// NewItemRequest wraps the world dictionary for NewItemSystemPrompt.
func NewItemRequest(worldDict string) string {
	return fmt.Sprintf("**World JSON Dictionary**\n%s", worldDict)
}

// InventoryCheckSystemPrompt asks whether the user's action uses items, and
// which. The reply is "True [\"item\", ...]" or "False".
const InventoryCheckSystemPrompt = `**Steps:**

1. You are given the user's next action in an interactive story.
2. Determine whether the action USES any specific items.
3. If items are used, return "True" followed by a JSON list of the item names (e.g. True ["rope", "torch"]).
4. If no items are used, return "False" ONLY.`

// NPCCheckSystemPrompt builds the instructions for deciding whether new
// character dictionaries are needed after a story beat.
func NPCCheckSystemPrompt(mainCharName string) string {
	return fmt.Sprintf(`**Rules:**
- A Character JSON dictionary is only created once the ACTUAL NAME of a new character is known. If the Main Character DOESN'T know the new character's name, DON'T create a Character JSON dictionary yet.
    - The new character will introduce themselves to the Main Character by giving them their NAME, so only create a new character when an introduction is made.
- Don't create a JSON dictionary for the Main Character, %q.

**Steps:**
1. You are given a story
2. Read through the story and determine whether a new character's JSON dictionary needs to be created.
3. If a JSON dictionary needs to be created, return "True" and a JSON list of the character names that a Character JSON dictionary needs to be created for (e.g. True ["Jane", "John"]).
4. If no new character JSON dictionary needs to be created, return "False".`, mainCharName)
}

// NPCCheckRequest wraps a story beat and the names that already exist.
func NPCCheckRequest(story string, currentNames []string) string {
	var sb strings.Builder
	sb.WriteString(story)
	sb.WriteString("\n- REMEMBER a Character JSON dictionary is only created once the REAL NAME of a new character is known.\n")
	sb.WriteString("- DO NOT create JSON dictionaries for the characters provided in the list given to you.\n")
	fmt.Fprintf(&sb, "%s\n", formatStringList(currentNames))
	return sb.String()
}

// NPCCreationSystemPrompt is the instruction set for generating new NPC
// character dictionaries.
const NPCCreationSystemPrompt = `**Remember the following rules:**
1. You are given a story.
2. Read through the story and create NEW Character JSON dictionaries for the characters provided in the list given to you.
3. When creating new characters, follow the format specified below.
4. Return NEW character JSON dictionaries ONLY, as a JSON list.
{
    "id": int // Unique ID for the character
    "name": str // Name of the character
    "physical_condition": str // Leave this empty
    "occupation": str // Occupation of the character, give a valid one suiting the genre and story
    "money": float // How much money the character has
    "relationship": Dict[id: str, relationship_type: str] // Leave this empty
    "personality" (3): List[str] // A list of the character's personalities
    "inventory": List[str] // A list of items a character has
    "stats": Dict[stat: str, val: int (1-100)] // Stats determine how much health a character has ("HP")
    "current_location": str // Leave this empty
    "appearance": str // The appearance of the character (including their gender)
}`

// NPCCreationRequest asks for dictionaries for the named characters, with
// their pre-assigned IDs.
func NPCCreationRequest(names []string, startID int, genre, story string) string {
	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = fmt.Sprintf("{\"Name\": %q, \"ID\": %d}", name, startID+i)
	}
	return fmt.Sprintf("Create new Character JSON dictionaries for the following characters: [%s]. The %q story where the character first appears is given below:\n%s",
		strings.Join(pairs, ", "), genre, story)
}
