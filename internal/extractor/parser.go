package extractor

import (
	"strconv"
	"strings"

	"rpg-engine/shared/models"
)

// falseSentinel marks a value that failed numeric validation. It mirrors the
// model's own "no updates" reply so downstream code drops it the same way.
const falseSentinel = "false"

// parsedLine is the raw split of one update line, before reference
// resolution. subject and object still hold whatever token the model wrote
// (an ID, a name, or garbage).
type parsedLine struct {
	subject string
	object  string          // relationship only
	op      models.UpdateOp // money, inventory, hp
	value   string
}

// splitLine breaks one normalized-or-raw update line into its parts
// according to the attribute kind's grammar:
//
//   - physical_condition, current_location: subject=value, split on the
//     first '='
//   - relationship: subject=object, label — '=' first, then the first comma
//   - money, inventory, hp: subject+=value or subject-=value; "+=" is tested
//     before "-=", so a line containing both is treated as an increase
//
// A missing operator or missing part is a format error handed to the
// requery coordinator.
func splitLine(kind models.AttributeKind, line string) (parsedLine, error) {
	switch kind {
	case models.KindPhysicalCondition, models.KindLocation:
		left, right, found := strings.Cut(line, "=")
		if !found {
			return parsedLine{}, models.ErrLineUnsalvageable
		}
		return parsedLine{
			subject: Normalize(left),
			value:   Normalize(right),
		}, nil

	case models.KindRelationship:
		left, right, found := strings.Cut(line, "=")
		if !found {
			return parsedLine{}, models.ErrLineUnsalvageable
		}
		object, label, found := strings.Cut(right, ",")
		if !found {
			return parsedLine{}, models.ErrLineUnsalvageable
		}
		return parsedLine{
			subject: Normalize(left),
			object:  Normalize(object),
			value:   Normalize(label),
		}, nil

	default: // money, inventory, hp
		op := models.OpIncrease
		left, right, found := strings.Cut(line, "+=")
		if !found {
			op = models.OpDecrease
			left, right, found = strings.Cut(line, "-=")
		}
		if !found {
			return parsedLine{}, models.ErrLineUnsalvageable
		}
		return parsedLine{
			subject: Normalize(left),
			op:      op,
			value:   Normalize(right),
		}, nil
	}
}

// validateNumeric enforces the numeric grammar of money and hp amounts.
// A failed parse yields the "false" sentinel, never a silent zero.
func validateNumeric(kind models.AttributeKind, value string) string {
	switch kind {
	case models.KindMoney:
		if v, err := strconv.ParseFloat(value, 64); err != nil || v < 0 {
			return falseSentinel
		}
	case models.KindHP:
		if v, err := strconv.Atoi(value); err != nil || v < 0 {
			return falseSentinel
		}
	}
	return value
}
