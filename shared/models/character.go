package models

import (
	"math"
	"strings"
)

// Stat names every character carries. HP is mandatory; LUCK and CHA are
// only guaranteed for the main character.
const (
	StatHP   = "HP"
	StatLuck = "LUCK"
	StatCha  = "CHA"
)

// HP bounds enforced by every HP mutation.
const (
	MinHP = 0
	MaxHP = 100
)

// Character holds the mutable state of one story participant. The main
// character and NPCs share the same shape; IDs are unique across both.
type Character struct {
	ID                int            `json:"id"`
	Name              string         `json:"name"`
	PhysicalCondition string         `json:"physical_condition"`
	Occupation        string         `json:"occupation"`
	Money             float64        `json:"money"`
	Relationship      map[int]string `json:"relationship"`
	Personality       []string       `json:"personality"`
	Inventory         []string       `json:"inventory"`
	Stats             map[string]int `json:"stats"`
	CurrentLocation   string         `json:"current_location"`
	Appearance        string         `json:"appearance"`
}

// HP returns the character's current health.
func (c *Character) HP() int {
	return c.Stats[StatHP]
}

// Luck returns the character's LUCK stat (0 when absent).
func (c *Character) Luck() int {
	return c.Stats[StatLuck]
}

// Charisma returns the character's CHA stat (0 when absent).
func (c *Character) Charisma() int {
	return c.Stats[StatCha]
}

// IncreaseHP raises HP by amount, clamped to MaxHP.
func (c *Character) IncreaseHP(amount int) {
	if c.Stats == nil {
		c.Stats = make(map[string]int)
	}
	if c.Stats[StatHP]+amount >= MaxHP {
		c.Stats[StatHP] = MaxHP
	} else {
		c.Stats[StatHP] += amount
	}
}

// DecreaseHP lowers HP by amount, clamped to MinHP.
func (c *Character) DecreaseHP(amount int) {
	if c.Stats == nil {
		c.Stats = make(map[string]int)
	}
	if c.Stats[StatHP]-amount <= MinHP {
		c.Stats[StatHP] = MinHP
	} else {
		c.Stats[StatHP] -= amount
	}
}

// IncreaseMoney adds amount to the character's balance, rounded to 2 decimals.
func (c *Character) IncreaseMoney(amount float64) {
	c.Money = RoundMoney(c.Money + amount)
}

// DecreaseMoney subtracts amount from the character's balance, rounded to 2 decimals.
// Solvency is the caller's responsibility (see engine.CheckMoney).
func (c *Character) DecreaseMoney(amount float64) {
	c.Money = RoundMoney(c.Money - amount)
}

// AddRelationship upserts the relationship label towards another character.
// No history is kept.
func (c *Character) AddRelationship(otherID int, relation string) {
	if c.Relationship == nil {
		c.Relationship = make(map[int]string)
	}
	c.Relationship[otherID] = relation
}

// AddInventory appends an item, normalized to lowercase. Duplicates are allowed.
func (c *Character) AddInventory(item string) {
	c.Inventory = append(c.Inventory, strings.ToLower(item))
}

// RemoveInventory removes the first occurrence of item, compared
// case-insensitively since additions are lowercased. Removing an absent item
// is a no-op, not an error.
func (c *Character) RemoveInventory(item string) {
	for i, held := range c.Inventory {
		if strings.EqualFold(held, item) {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			return
		}
	}
}

// HasInventory reports whether the character holds the item, case-insensitively.
func (c *Character) HasInventory(item string) bool {
	for _, held := range c.Inventory {
		if strings.EqualFold(held, item) {
			return true
		}
	}
	return false
}

// IsDeceased reports whether the physical condition marks the character dead.
// The narrative layer uses both spellings.
func (c *Character) IsDeceased() bool {
	return strings.EqualFold(c.PhysicalCondition, ConditionDeceased) ||
		strings.EqualFold(c.PhysicalCondition, ConditionDead)
}

// Condition strings treated as death markers, case-insensitively.
const (
	ConditionDeceased = "Deceased"
	ConditionDead     = "Dead"
	ConditionHealthy  = "Healthy"
)

// Clone returns a deep copy detached from the live session state, so a
// snapshot can be read or marshalled while the session keeps mutating.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	if c.Relationship != nil {
		out.Relationship = make(map[int]string, len(c.Relationship))
		for id, rel := range c.Relationship {
			out.Relationship[id] = rel
		}
	}
	if c.Stats != nil {
		out.Stats = make(map[string]int, len(c.Stats))
		for stat, val := range c.Stats {
			out.Stats[stat] = val
		}
	}
	out.Personality = append([]string(nil), c.Personality...)
	out.Inventory = append([]string(nil), c.Inventory...)
	return &out
}

// RoundMoney rounds a balance to 2 decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
