package engine

import (
	"math/rand"

	"go.uber.org/zap"

	"rpg-engine/shared/models"
)

// Engine owns the typed world model of one game session: the main
// character, the NPC roster, the world and the timeline. Nothing else
// mutates these objects; extraction pipelines only ever see read-only
// snapshots, so the engine can apply a gathered batch without locking.
type Engine struct {
	world    *models.World
	timeline *models.Timeline
	main     *models.Character
	npcs     []*models.Character

	rng    *rand.Rand
	logger *zap.Logger
}

// New creates an empty engine. rng drives HP damping and random events and
// is injected so tests can seed it.
func New(logger *zap.Logger, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Engine{
		world:    &models.World{},
		timeline: &models.Timeline{},
		rng:      rng,
		logger:   logger,
	}
}

// SetMainCharacter installs the main character. The main character is always
// roster index 0 and never appears in the NPC list.
func (e *Engine) SetMainCharacter(c *models.Character) {
	if c.Relationship == nil {
		c.Relationship = make(map[int]string)
	}
	e.main = c
}

// AddCharacter appends a new NPC to the roster.
func (e *Engine) AddCharacter(c *models.Character) {
	if c.Relationship == nil {
		c.Relationship = make(map[int]string)
	}
	e.npcs = append(e.npcs, c)
}

// SetWorld replaces the world.
func (e *Engine) SetWorld(w *models.World) {
	e.world = w
}

// SetTimeline replaces the timeline.
func (e *Engine) SetTimeline(t *models.Timeline) {
	e.timeline = t
}

// Rand exposes the session's random source so collaborating layers (turn
// cadence counters) draw from the same seeded stream.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// MainCharacter returns the main character.
func (e *Engine) MainCharacter() *models.Character { return e.main }

// Characters returns the NPC list, main character excluded.
func (e *Engine) Characters() []*models.Character { return e.npcs }

// World returns the world.
func (e *Engine) World() *models.World { return e.world }

// Timeline returns the timeline.
func (e *Engine) Timeline() *models.Timeline { return e.timeline }

// Roster builds the id/name/balance snapshot used by extraction and money
// validation, main character first.
func (e *Engine) Roster() models.Roster {
	r := models.Roster{
		IDs:   make([]int, 0, len(e.npcs)+1),
		Names: make([]string, 0, len(e.npcs)+1),
		Money: make([]float64, 0, len(e.npcs)+1),
	}
	if e.main != nil {
		r.IDs = append(r.IDs, e.main.ID)
		r.Names = append(r.Names, e.main.Name)
		r.Money = append(r.Money, e.main.Money)
	}
	for _, npc := range e.npcs {
		r.IDs = append(r.IDs, npc.ID)
		r.Names = append(r.Names, npc.Name)
		r.Money = append(r.Money, npc.Money)
	}
	return r
}

// NextCharID returns the next free ID for a new NPC: one past the highest
// ID currently in use.
func (e *Engine) NextCharID() int {
	next := 1
	if e.main != nil && e.main.ID > next {
		next = e.main.ID
	}
	for _, npc := range e.npcs {
		if npc.ID > next {
			next = npc.ID
		}
	}
	return next + 1
}

// AliveNPCCount reports how many NPCs are not deceased. The narrative layer
// stops introducing new characters past a cap.
func (e *Engine) AliveNPCCount() int {
	alive := 0
	for _, npc := range e.npcs {
		if !npc.IsDeceased() {
			alive++
		}
	}
	return alive
}

// characterByID finds a character, main character included.
func (e *Engine) characterByID(id int) *models.Character {
	if e.main != nil && e.main.ID == id {
		return e.main
	}
	for _, npc := range e.npcs {
		if npc.ID == id {
			return npc
		}
	}
	return nil
}
