package extractor

import (
	"strconv"
	"strings"

	"rpg-engine/shared/models"
)

// ResolveRef maps a token that may be a numeric character ID or a character
// display name to the canonical integer ID from the roster.
//
// A numeric token must name an existing roster ID. A non-numeric token must
// match exactly one roster name; duplicate names are reported as ambiguous
// rather than guessed. Anything else is unresolved and left to the requery
// coordinator.
func ResolveRef(token string, roster models.Roster) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, models.ErrUnresolvedReference
	}

	if id, err := strconv.Atoi(token); err == nil {
		if roster.IndexOf(id) >= 0 {
			return id, nil
		}
		return 0, models.ErrUnresolvedReference
	}

	matchIdx := -1
	matches := 0
	for i, name := range roster.Names {
		if name == token {
			matchIdx = i
			matches++
		}
	}
	switch matches {
	case 1:
		return roster.IDs[matchIdx], nil
	case 0:
		return 0, models.ErrUnresolvedReference
	default:
		return 0, models.ErrAmbiguousReference
	}
}
