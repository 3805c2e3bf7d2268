package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Entity errors
	ErrMsgEntityNotFound     = "entity not found"
	ErrMsgMissingInteraction = "entity has no interaction behavior"

	// Creature errors
	ErrMsgCreatureNotFound = "creature not found"
	ErrMsgCreatureDead     = "creature is dead"

	// Item errors
	ErrMsgUnusableItem     = "item has no usable capability"
	ErrMsgItemNotFound     = "item not found"
	ErrMsgNoWeaponEquipped = "no weapon equipped"

	// Placement errors
	ErrMsgInvalidPosition = "position outside world bounds"
	ErrMsgOutOfRange      = "target out of range"

	// Turn errors
	ErrMsgEmptyTurnOrder = "turn order is empty"
	ErrMsgNotCurrentTurn = "not this creature's turn"

	// Encounter errors
	ErrMsgEncounterNotFound = "encounter not found"
	ErrMsgEncounterOver     = "encounter is over"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Entity errors
	ErrEntityNotFound     = errors.New(ErrMsgEntityNotFound)
	ErrMissingInteraction = errors.New(ErrMsgMissingInteraction)

	// Creature errors
	ErrCreatureNotFound = errors.New(ErrMsgCreatureNotFound)
	ErrCreatureDead     = errors.New(ErrMsgCreatureDead)

	// Item errors
	ErrUnusableItem     = errors.New(ErrMsgUnusableItem)
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrNoWeaponEquipped = errors.New(ErrMsgNoWeaponEquipped)

	// Placement errors
	ErrInvalidPosition = errors.New(ErrMsgInvalidPosition)
	ErrOutOfRange      = errors.New(ErrMsgOutOfRange)

	// Turn errors
	ErrEmptyTurnOrder = errors.New(ErrMsgEmptyTurnOrder)
	ErrNotCurrentTurn = errors.New(ErrMsgNotCurrentTurn)

	// Encounter errors
	ErrEncounterNotFound = errors.New(ErrMsgEncounterNotFound)
	ErrEncounterOver     = errors.New(ErrMsgEncounterOver)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
