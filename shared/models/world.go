package models

// World describes the story setting shared by every character.
type World struct {
	Rules       []string `json:"rules"`       // append-only
	Genre       string   `json:"genre"`       // immutable after creation
	Environment string   `json:"environment"` // current scene description, replaced wholesale
	Locations   []string `json:"locations"`   // visited locations, insertion order, de-duplicated
}

// Clone returns a deep copy detached from the live session state.
func (w *World) Clone() *World {
	if w == nil {
		return nil
	}
	out := *w
	out.Rules = append([]string(nil), w.Rules...)
	out.Locations = append([]string(nil), w.Locations...)
	return &out
}

// AddRules appends rules to the world. Rules are never removed.
func (w *World) AddRules(rules []string) {
	w.Rules = append(w.Rules, rules...)
}

// AddLocation records a visited location. Already known locations are ignored
// so the list stays set-like while keeping insertion order.
func (w *World) AddLocation(location string) {
	for _, known := range w.Locations {
		if known == location {
			return
		}
	}
	w.Locations = append(w.Locations, location)
}
