package engine

import (
	"strconv"

	"rpg-engine/shared/models"
)

// CheckMoney verifies that no pending money deduction would drive a balance
// negative. It is a pure pre-commit check over the roster snapshot: balances
// are never touched, and the engine only applies the batch when every update
// passes.
//
// Offenders are the characters whose balance would go negative, plus any
// update whose amount is not a valid number. Each character is reported at
// most once. On failure the caller must regenerate the narrative; the same
// batch is never partially applied.
func CheckMoney(pending []models.Update, roster models.Roster) (bool, []models.CharRef) {
	valid := true
	var offenders []models.CharRef
	seen := make(map[int]bool)

	flag := func(idx int) {
		valid = false
		id := roster.IDs[idx]
		if seen[id] {
			return
		}
		seen[id] = true
		offenders = append(offenders, models.CharRef{ID: id, Name: roster.Names[idx]})
	}

	for _, u := range pending {
		if u.Kind != models.KindMoney {
			continue
		}
		idx := roster.IndexOf(u.CharID)
		if idx < 0 {
			continue
		}
		amount, err := strconv.ParseFloat(u.Value, 64)
		if err != nil {
			flag(idx)
			continue
		}
		if u.Op == models.OpDecrease && roster.Money[idx]-amount < 0 {
			flag(idx)
		}
	}
	return valid, offenders
}
