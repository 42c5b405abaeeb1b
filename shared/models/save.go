package models

// GameSave is the full serialized state of one session: the world, the
// roster, the timeline and every chat history, so a loaded game resumes with
// the generator's full context intact. Histories are keyed by conversation
// name (the story thread plus one thread per tracked attribute).
type GameSave struct {
	World         *World                   `json:"world"`
	Characters    []*Character             `json:"characters"`
	Timeline      *Timeline                `json:"timeline"`
	MainCharacter *Character               `json:"main_character"`
	Histories     map[string][]ChatMessage `json:"history"`
}
