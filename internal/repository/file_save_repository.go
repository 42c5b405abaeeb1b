package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"rpg-engine/shared/models"
)

const saveSuffix = "_save_data.json"

// FileSaveRepository stores each session as one pretty-printed JSON document
// on the local filesystem, named after the main character. Exports go to a
// sibling directory as a per-session bundle.
type FileSaveRepository struct {
	savesDir   string
	exportsDir string
	logger     *zap.Logger
}

// NewFileSaveRepository creates a repository rooted at the given directories.
// The directories are created lazily on first write.
func NewFileSaveRepository(savesDir, exportsDir string, logger *zap.Logger) *FileSaveRepository {
	return &FileSaveRepository{
		savesDir:   savesDir,
		exportsDir: exportsDir,
		logger:     logger,
	}
}

// Save writes the session state to <main character>_save_data.json,
// overwriting any previous save for the same character.
func (r *FileSaveRepository) Save(_ context.Context, save *models.GameSave) (string, error) {
	if save.MainCharacter == nil {
		return "", models.ErrInvalidInput
	}
	if err := os.MkdirAll(r.savesDir, 0o755); err != nil {
		return "", fmt.Errorf("create saves directory: %w", err)
	}

	data, err := json.MarshalIndent(save, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal save: %w", err)
	}

	name := save.MainCharacter.Name + saveSuffix
	if err := os.WriteFile(filepath.Join(r.savesDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}

	r.logger.Info("Game saved", zap.String("file", name))
	return name, nil
}

// Load reads a named save back into a GameSave.
func (r *FileSaveRepository) Load(_ context.Context, name string) (*models.GameSave, error) {
	data, err := os.ReadFile(filepath.Join(r.savesDir, filepath.Base(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.ErrSaveNotFound
		}
		return nil, fmt.Errorf("read save: %w", err)
	}

	var save models.GameSave
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("unmarshal save %q: %w", name, err)
	}

	r.logger.Info("Game loaded", zap.String("file", name))
	return &save, nil
}

// List returns the names of every save file in the saves directory.
func (r *FileSaveRepository) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.savesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read saves directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ExportStory writes the finished session as a bundle directory named
// <main character>_<genre>_<timestamp>: world, timeline and characters as
// JSON (main character first), and the story as plain text with one sentence
// per line and a blank line between turns.
func (r *FileSaveRepository) ExportStory(_ context.Context, save *models.GameSave, story []string) (string, error) {
	if save.MainCharacter == nil || save.World == nil {
		return "", models.ErrInvalidInput
	}

	dir := filepath.Join(r.exportsDir, fmt.Sprintf("%s_%s_%s",
		save.MainCharacter.Name, save.World.Genre, time.Now().Format("20060102_150405")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	characters := append([]*models.Character{save.MainCharacter}, save.Characters...)
	files := map[string]any{
		"characters.json": characters,
		"world.json":      save.World,
		"timeline.json":   save.Timeline,
	}
	for name, v := range files {
		data, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return "", fmt.Errorf("marshal %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "story.txt"), []byte(formatStory(story)), 0o644); err != nil {
		return "", fmt.Errorf("write story: %w", err)
	}

	r.logger.Info("Story exported", zap.String("dir", dir))
	return dir, nil
}

// formatStory reflows the story turns so each sentence sits on its own line,
// with a blank line between turns.
func formatStory(story []string) string {
	var sb strings.Builder
	for _, turn := range story {
		for _, paragraph := range strings.Split(turn, "\n") {
			for _, sentence := range strings.Split(paragraph, ".") {
				sentence = strings.TrimSpace(sentence)
				if sentence == "" {
					continue
				}
				sb.WriteString(sentence)
				sb.WriteString(".\n")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
