package prompts

import (
	"fmt"
	"strings"

	"rpg-engine/shared/models"
)

// lineFormats describes the exact update-line shape expected per attribute.
var lineFormats = map[models.AttributeKind]string{
	models.KindPhysicalCondition: "char_id=new_physical_condition",
	models.KindMoney:             "char_id+=amount (money gained) or char_id-=amount (money spent or lost)",
	models.KindRelationship:      "char_id=other_char_id, relationship_type",
	models.KindInventory:         "char_id+=item (item gained) or char_id-=item (item lost)",
	models.KindHP:                "char_id+=amount (hp recovered) or char_id-=amount (hp lost)",
	models.KindLocation:          "char_id=new_location",
}

// attributeGuidance adds per-kind rules that keep the replies parseable.
var attributeGuidance = map[models.AttributeKind]string{
	models.KindPhysicalCondition: "The new physical condition is a short status such as \"Healthy\", \"Injured\" or \"Deceased\".",
	models.KindMoney:             "The amount must be a plain non-negative number, e.g. 12.50. No currency symbols.",
	models.KindRelationship:      "Both char_id and other_char_id are the integer IDs from the dictionaries below.",
	models.KindInventory:         "The item is a short lowercase name, e.g. \"rusty sword\".",
	models.KindHP:                "The amount must be a plain non-negative integer.",
	models.KindLocation:          "The new location is a short place name from the story.",
}

// UpdateSystemPrompt returns the system instructions for the extraction
// conversation of one attribute kind.
func UpdateSystemPrompt(kind models.AttributeKind) string {
	var sb strings.Builder
	sb.WriteString("**Remember the following rules:**\n")
	sb.WriteString("1. You are given the latest part of a story and the Character JSON dictionaries.\n")
	fmt.Fprintf(&sb, "2. Determine whether the \"%s\" attribute of any character changed in the story.\n", kind)
	fmt.Fprintf(&sb, "3. Report every change as its own line in EXACTLY this format: %s\n", lineFormats[kind])
	sb.WriteString("4. Use the integer char_id from the Character JSON dictionaries. One change per line, nothing else.\n")
	fmt.Fprintf(&sb, "5. %s\n", attributeGuidance[kind])
	sb.WriteString("6. If no character's attribute changed, return \"False\" ONLY.\n")
	return sb.String()
}

// UpdateRequest builds the user message asking for all updates of one
// attribute kind in the given story excerpt.
func UpdateRequest(kind models.AttributeKind, story, charContext string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Story:\n%s\n\n", story)
	fmt.Fprintf(&sb, "**Character JSON dictionaries (%s):**\n%s\n", kind, charContext)
	return sb.String()
}

// RequerySystemPrompt returns the system instructions for a corrective
// requery of a single malformed update line.
func RequerySystemPrompt(kind models.AttributeKind) string {
	var sb strings.Builder
	sb.WriteString("**Steps:**\n")
	fmt.Fprintf(&sb, "1. You are given a story, the Character JSON dictionaries and ONE malformed \"%s\" update line.\n", kind)
	fmt.Fprintf(&sb, "2. Rewrite that line in EXACTLY this format: %s\n", lineFormats[kind])
	sb.WriteString("3. The char_id must be the integer ID from the Character JSON dictionaries, never a name.\n")
	sb.WriteString("4. Return ONLY the corrected line.\n")
	return sb.String()
}

// RequeryRequest builds the user message for a corrective requery.
func RequeryRequest(story, charContext, badLine string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Story:\n%s\n\n", story)
	fmt.Fprintf(&sb, "**Character JSON dictionaries:**\n%s\n\n", charContext)
	fmt.Fprintf(&sb, "Malformed update line:\n%s\n", badLine)
	return sb.String()
}
