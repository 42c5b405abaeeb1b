package models

import "errors"

// Application-wide standard errors
var (
	// Extraction errors. None of these abort a batch: a failed line is
	// dropped and the remaining updates still apply.
	ErrLineUnsalvageable   = errors.New("update line failed to parse after retry budget")
	ErrUnresolvedReference = errors.New("character reference could not be resolved")
	ErrAmbiguousReference  = errors.New("character reference matches more than one name")
	ErrInvalidNumeric      = errors.New("amount is not a valid number")

	// Money validation. An overdrafting batch forces a story regeneration;
	// once the regeneration budget runs out the whole batch is dropped and
	// the failure recorded with this error. Never a partial apply.
	ErrInsufficientFunds = errors.New("character does not have enough money for the transaction")

	// Engine / session errors
	ErrCharacterNotFound = errors.New("character not found in roster")
	ErrGameNotFound      = errors.New("game session not found")
	ErrMainCharacterDead = errors.New("main character is deceased")

	// Persistence errors
	ErrSaveNotFound = errors.New("save file not found")

	// General request errors (HTTP layer)
	ErrInvalidInput = errors.New("invalid input data")
)
