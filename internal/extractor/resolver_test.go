package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rpg-engine/shared/models"
)

func TestResolveRef(t *testing.T) {
	roster := models.Roster{
		IDs:   []int{1, 2, 3, 4},
		Names: []string{"Bob", "Josh", "Mira", "Josh"},
	}

	t.Run("numeric id", func(t *testing.T) {
		id, err := ResolveRef("2", roster)
		assert.NoError(t, err)
		assert.Equal(t, 2, id)
	})

	t.Run("unknown numeric id", func(t *testing.T) {
		_, err := ResolveRef("9", roster)
		assert.ErrorIs(t, err, models.ErrUnresolvedReference)
	})

	t.Run("unique name", func(t *testing.T) {
		id, err := ResolveRef("Bob", roster)
		assert.NoError(t, err)
		assert.Equal(t, 1, id)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ResolveRef("Greta", roster)
		assert.ErrorIs(t, err, models.ErrUnresolvedReference)
	})

	t.Run("duplicate name is ambiguous", func(t *testing.T) {
		_, err := ResolveRef("Josh", roster)
		assert.ErrorIs(t, err, models.ErrAmbiguousReference)
	})

	t.Run("surrounding whitespace ignored", func(t *testing.T) {
		id, err := ResolveRef("  Mira ", roster)
		assert.NoError(t, err)
		assert.Equal(t, 3, id)
	})

	t.Run("empty token unresolved", func(t *testing.T) {
		_, err := ResolveRef("", roster)
		assert.ErrorIs(t, err, models.ErrUnresolvedReference)
	})
}
