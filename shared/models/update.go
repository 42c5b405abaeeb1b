package models

// AttributeKind identifies which character attribute an update line targets.
// The values double as the attribute names used inside prompts.
type AttributeKind string

const (
	KindPhysicalCondition AttributeKind = "physical_condition"
	KindMoney             AttributeKind = "money"
	KindRelationship      AttributeKind = "relationship"
	KindInventory         AttributeKind = "inventory"
	KindHP                AttributeKind = "hp"
	KindLocation          AttributeKind = "current_location"
)

// AllAttributeKinds lists every kind extracted for a narrative turn.
var AllAttributeKinds = []AttributeKind{
	KindPhysicalCondition,
	KindMoney,
	KindRelationship,
	KindInventory,
	KindHP,
	KindLocation,
}

// UpdateOp is the direction of a money, inventory or hp change.
type UpdateOp string

const (
	OpIncrease UpdateOp = "+"
	OpDecrease UpdateOp = "-"
)

// Update is one typed attribute change produced by the extraction pipeline.
// Updates are transient: they are consumed exactly once by the engine and
// never persisted.
//
// Field usage per kind:
//   - physical_condition, current_location: CharID, Value (new value)
//   - relationship: CharID, OtherCharID, Value (label)
//   - money: CharID, Op, Value (non-negative decimal string)
//   - inventory: CharID, Op, Value (item name)
//   - hp: CharID, Op, Value (non-negative integer string)
type Update struct {
	Kind        AttributeKind `json:"kind"`
	CharID      int           `json:"char_id"`
	OtherCharID int           `json:"other_char_id,omitempty"`
	Op          UpdateOp      `json:"op,omitempty"`
	Value       string        `json:"value"`
}

// CharRef is an (id, name) pair used when reporting characters back to the
// narrative layer, e.g. money-check offenders.
type CharRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Roster is a read-only id/name/balance snapshot of the current cast used by
// the extraction pipelines and the money validator. The main character is
// always index 0 and is never duplicated in the NPC part.
type Roster struct {
	IDs   []int
	Names []string
	Money []float64
}

// IndexOf returns the roster position of a character ID, or -1.
func (r Roster) IndexOf(id int) int {
	for i, known := range r.IDs {
		if known == id {
			return i
		}
	}
	return -1
}
