package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path parameter error messages
	ErrMsgInvalidID = "Invalid %s"

	// Encounter operation error messages
	ErrMsgCreateEncounterFailed = "Failed to create encounter"
	ErrMsgGetEncounterFailed    = "Failed to get encounter"
	ErrMsgAttackFailed          = "Failed to resolve attack"
	ErrMsgPickupFailed          = "Failed to pick up item"
	ErrMsgMoveFailed            = "Failed to move"
	ErrMsgInteractFailed        = "Failed to interact"
	ErrMsgAdvanceTurnFailed     = "Failed to advance turn"
	ErrMsgTurnOrderFailed       = "Failed to get turn order"
	ErrMsgGetStatsFailed        = "Failed to get encounter stats"
	ErrMsgListItemsFailed       = "Failed to list items"
)
