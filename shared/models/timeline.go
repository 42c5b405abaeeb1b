package models

// Timeline is the append-only list of summarized story events.
type Timeline struct {
	KeyEvents []string `json:"key_events"`
}

// Clone returns a deep copy detached from the live session state.
func (t *Timeline) Clone() *Timeline {
	if t == nil {
		return nil
	}
	return &Timeline{KeyEvents: append([]string(nil), t.KeyEvents...)}
}

// AddEvent appends a summarized event, skipping exact duplicates.
func (t *Timeline) AddEvent(event string) {
	for _, known := range t.KeyEvents {
		if known == event {
			return
		}
	}
	t.KeyEvents = append(t.KeyEvents, event)
}
