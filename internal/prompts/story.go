package prompts

import (
	"fmt"
	"strings"

	"rpg-engine/shared/models"
)

// StorySystemPrompt is the system instruction set for the main story
// conversation.
const StorySystemPrompt = `**Remember the following rules:**
1. The story should feel like a window into an already existing world.
   a. Make the world feel alive and dynamic by triggering random events or CONFLICTS without being prompted to by the user.
   b. Advance the plot forwards if you feel the Main Character is not doing anything noteworthy.
   c. Make the NPCs ENGAGE with the Main Character through dialogues and actions.
   d. Allow the NPCs to interact and form relationships with other NPCs.
   e. You are allowed to let the NPCs get injured and die.
2. Present the story in a SECOND-PERSON view. The second-person should refer to the Main Character.
3. Allow the Main Character's actions/choices to be decided by the user. Avoid providing multiple-choice options; let the user type out their choices freely.
4. DON'T introduce new characters unless told to in the user message. When you do get told to introduce a new character to the story, remember these:
   a. When introducing new characters, assume they don't know the Main Character yet (it's their first time talking to them).
   b. DON'T use the new character names in the story until they introduce themselves to the Main Character, using a name or alias.
5. If the user attempts an action that violates established "Rules" in the World JSON dictionary, or is impossible given the current state of the world or characters, explain why it can't be done and ask for a different action.
6. If the Main Character want to buy something in the story, make the merchant start a discussion with them and give them the prices.`

// StartingPrompt builds the prompt that opens a new story.
func StartingPrompt(genre, mainCharName, characters, world, timeline string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Character JSON dictionary:**\n%s\n", characters)
	fmt.Fprintf(&sb, "**World JSON dictionary:**\n%s\n", world)
	fmt.Fprintf(&sb, "**Timeline JSON dictionary:**\n%s\n", timeline)
	fmt.Fprintf(&sb, "You are a storyteller. Create an interactive %q story that is in a style similar to a book and is only one paragraph that is 5 sentences long. The Main Character (ID: 1) is %q.\n", genre, mainCharName)
	return sb.String()
}

// ContinuationOptions carries the optional clauses folded into a
// continuation prompt.
type ContinuationOptions struct {
	DeceasedMessage string // death notice from the reconciler, empty when nobody died
	MoneyMessage    string // insufficient-funds notice forcing a regeneration
	RandomEvent     string // description of a triggered random event
	IntroduceNPC    bool   // ask the model to bring in a new character
}

// ContinuationPrompt builds the prompt that advances the story by one turn.
func ContinuationPrompt(genre, mainCharName, userInput, charContext string, opts ContinuationOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a storyteller. Continue the interactive %q story that is in a style similar to a book and is only one paragraph that is 5 sentences long. The Main Character (ID: 1) is %q. This is what the user wants to do next: %q.\n", genre, mainCharName, userInput)

	if opts.DeceasedMessage != "" {
		if strings.Contains(opts.DeceasedMessage, ",") {
			fmt.Fprintf(&sb, "\nThese characters have died: %s\nPlease justify their deaths naturally in the story.\n", opts.DeceasedMessage)
		} else {
			fmt.Fprintf(&sb, "\nA character has died in the story: %s\nPlease justify their death naturally in the story.\n", opts.DeceasedMessage)
		}
	}
	if opts.MoneyMessage != "" {
		fmt.Fprintf(&sb, "\n%s\n", opts.MoneyMessage)
	}
	if opts.RandomEvent != "" {
		fmt.Fprintf(&sb, "\nA random event has occurred in the story:\n%s\nPlease justify this random event naturally in the story.\n", opts.RandomEvent)
	}
	if opts.IntroduceNPC {
		sb.WriteString("\nGradually introduce a new character to the story to interact with the Main Character.\nMake the new character introduce themself with a name or alias.\n")
	}

	fmt.Fprintf(&sb, "\nBelow are the updated Character JSON dictionaries\n%s\n", charContext)
	return sb.String()
}

// MoneyMessage renders the insufficient-funds notice handed back to the
// narrative layer when a money batch fails validation. The caller must
// regenerate the story rather than re-apply the same numbers.
func MoneyMessage(offenders []models.CharRef) string {
	if len(offenders) == 0 {
		return ""
	}
	if len(offenders) == 1 {
		o := offenders[0]
		return fmt.Sprintf("%s (ID: %d) doesn't have enough money to perform the transaction in the story. Please regenerate the story with the same conditions, but make %s realize they don't have enough money.", o.Name, o.ID, o.Name)
	}
	var sb strings.Builder
	sb.WriteString("These characters: ")
	for i, o := range offenders {
		fmt.Fprintf(&sb, "%s (ID: %d)", o.Name, o.ID)
		if i != len(offenders)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString(" don't have enough money to perform the transaction in the story. Please regenerate the story with the same conditions, but make the characters listed realize they don't have enough money.")
	return sb.String()
}
