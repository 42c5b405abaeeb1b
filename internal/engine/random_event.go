package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"rpg-engine/shared/models"
)

// EventOracle supplies the generated flavor a random event needs. Implemented
// by the service layer on top of the chat client.
type EventOracle interface {
	// NewCondition proposes a better (positive) or worse (negative) physical
	// condition for the given one. An empty result means the condition
	// already sits at that extreme and another effect should be picked.
	NewCondition(ctx context.Context, current string, positive bool) (string, error)
	// NewRelationship deepens or sours an existing relationship label.
	NewRelationship(ctx context.Context, current string, positive bool) (string, error)
	// NewItem invents an item that fits the given world.
	NewItem(ctx context.Context, world *models.World) (string, error)
}

// Random event outcome statuses, used by DoubleUpdateCheck to know what to
// verify after the narrative turn has been applied.
const (
	EventCondition     = "condition"
	EventRelationship  = "relationship"
	EventIncreaseMoney = "increase money"
	EventDecreaseMoney = "decrease money"
	EventGainItem      = "gain item"
	EventLoseItem      = "lose item"
)

// Event describes a triggered random event. Description is folded into the
// next story prompt; Status/Amount/Item feed DoubleUpdateCheck afterwards.
type Event struct {
	Description string
	Status      string
	Amount      int    // money statuses
	Item        string // item statuses
}

// RandomEvent rolls the dice against the main character's luck and triggers
// one of four effects on them: physical condition, relationship, money or
// inventory. A roll above 13 minus luck makes the effect positive, otherwise
// negative. Effects that cannot apply (no relationships yet, no money, empty
// inventory, condition already at its extreme) cause another effect to be
// picked, up to maxRolls attempts; exhaustion yields no event.
//
// Condition and relationship changes, and item losses, mutate the main
// character immediately. Money changes and item gains are only narrated here;
// the regular update cycle applies them and DoubleUpdateCheck corrects any
// drift afterwards.
func (e *Engine) RandomEvent(ctx context.Context, oracle EventOracle, maxRolls int) (*Event, error) {
	if e.main == nil {
		return nil, nil
	}
	if maxRolls <= 0 {
		maxRolls = 15
	}

	roll := e.rng.Intn(11) + 2 // two dice, 2..12
	positive := roll > 13-e.main.Luck()

	effects := []string{"physical_condition", "money", "relationship", "inventory"}
	effect := effects[e.rng.Intn(len(effects))]

	for rolls := 0; rolls < maxRolls; rolls++ {
		switch effect {
		case "physical_condition":
			next, err := oracle.NewCondition(ctx, e.main.PhysicalCondition, positive)
			if err != nil {
				return nil, err
			}
			if next != "" {
				prev := e.main.PhysicalCondition
				e.main.PhysicalCondition = next
				return &Event{
					Description: fmt.Sprintf("The main character's physical condition went from %s to %s.", prev, next),
					Status:      EventCondition,
				}, nil
			}

		case "relationship":
			if len(e.main.Relationship) > 0 {
				otherID := e.pickRelationship()
				prev := e.main.Relationship[otherID]
				next, err := oracle.NewRelationship(ctx, prev, positive)
				if err != nil {
					return nil, err
				}
				e.main.AddRelationship(otherID, next)
				return &Event{
					Description: fmt.Sprintf("The main character's relationship with ID %d went from %s to %s.", otherID, prev, next),
					Status:      EventRelationship,
				}, nil
			}

		case "money":
			if e.main.Money > 0 {
				lo := int(e.main.Money)/2 + 1
				hi := int(e.main.Money) + 1
				amount := lo + e.rng.Intn(hi-lo+1)
				if positive {
					return &Event{
						Description: fmt.Sprintf("The main character's money has been increased by %d.", amount),
						Status:      EventIncreaseMoney,
						Amount:      amount,
					}, nil
				}
				return &Event{
					Description: fmt.Sprintf("The main character's money has been decreased by %d.", amount),
					Status:      EventDecreaseMoney,
					Amount:      amount,
				}, nil
			}

		case "inventory":
			if len(e.main.Inventory) > 0 {
				if positive {
					item, err := oracle.NewItem(ctx, e.world)
					if err != nil {
						return nil, err
					}
					return &Event{
						Description: fmt.Sprintf("The main character gained a new item called %s", item),
						Status:      EventGainItem,
						Item:        item,
					}, nil
				}
				item := e.main.Inventory[e.rng.Intn(len(e.main.Inventory))]
				e.main.RemoveInventory(item)
				return &Event{
					Description: fmt.Sprintf("The main character has lost an item called %s", item),
					Status:      EventLoseItem,
					Item:        item,
				}, nil
			}
		}

		effect = e.pickOtherEffect(effects, effect)
	}

	return nil, nil
}

// DoubleUpdateCheck verifies that the money or inventory change narrated by a
// random event actually landed on the main character once the turn's updates
// were applied, and fixes any discrepancy. prevMoney is the balance captured
// before the event fired.
func (e *Engine) DoubleUpdateCheck(ev *Event, prevMoney float64) {
	if ev == nil || e.main == nil {
		return
	}
	switch ev.Status {
	case EventIncreaseMoney:
		want := models.RoundMoney(prevMoney + float64(ev.Amount))
		if e.main.Money != want {
			e.main.Money = want
		}
	case EventDecreaseMoney:
		want := models.RoundMoney(prevMoney - float64(ev.Amount))
		if e.main.Money != want {
			e.main.Money = want
		}
	case EventGainItem:
		if !e.main.HasInventory(ev.Item) {
			e.main.AddInventory(ev.Item)
		}
	case EventLoseItem:
		if e.main.HasInventory(ev.Item) {
			e.main.RemoveInventory(ev.Item)
		}
	}
}

// pickRelationship chooses one of the main character's relationships,
// deterministically under a seeded rng.
func (e *Engine) pickRelationship() int {
	ids := make([]int, 0, len(e.main.Relationship))
	for id := range e.main.Relationship {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids[e.rng.Intn(len(ids))]
}

// pickOtherEffect re-picks an effect, excluding the one that could not apply.
func (e *Engine) pickOtherEffect(effects []string, current string) string {
	rest := make([]string, 0, len(effects)-1)
	for _, ef := range effects {
		if !strings.EqualFold(ef, current) {
			rest = append(rest, ef)
		}
	}
	return rest[e.rng.Intn(len(rest))]
}
