package repository

import (
	"context"

	"rpg-engine/shared/models"
)

// GameSaveRepository defines the storage methods for full game sessions.
type GameSaveRepository interface {
	// Save persists the complete session state and returns the name of the
	// save it wrote. Saving the same main character again overwrites the
	// previous save.
	Save(ctx context.Context, save *models.GameSave) (string, error)
	// Load restores a session from a named save.
	// Returns models.ErrSaveNotFound when no such save exists.
	Load(ctx context.Context, name string) (*models.GameSave, error)
	// List returns the names of all existing saves.
	List(ctx context.Context) ([]string, error)
	// ExportStory writes the finished session out as a bundle: the world,
	// timeline and characters as JSON plus the full story, one sentence per
	// line, as text. Returns the directory it created.
	ExportStory(ctx context.Context, save *models.GameSave, story []string) (string, error)
}
