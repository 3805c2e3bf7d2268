package stats

// ============================================================================
// Error Messages
// ============================================================================

// Validation error messages
const (
	ErrMsgEncounterIDRequired = "encounter ID is required"
	ErrMsgCreatureIDRequired  = "creature ID is required"
)

// Decode error messages
const (
	ErrMsgDecodeDamagePayload   = "failed to decode damage taken payload: %w"
	ErrMsgDecodeDeathPayload    = "failed to decode creature died payload: %w"
	ErrMsgDecodePotionPayload   = "failed to decode potion consumed payload: %w"
	ErrMsgDecodeBrokenPayload   = "failed to decode item broken payload: %w"
	ErrMsgDecodeCompletePayload = "failed to decode encounter completed payload: %w"
	ErrMsgDecodeEvictedPayload  = "failed to decode encounter evicted payload: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

// Service operation log messages
const (
	LogMsgDamageRecorded     = "Damage recorded"
	LogMsgDeathRecorded      = "Death recorded"
	LogMsgRetrievedSummary   = "Retrieved encounter summary"
	LogMsgEncounterCompleted = "Encounter summary closed"
)

// Error log messages
const (
	LogMsgFailedToRecordDamage = "Failed to record damage stat"
	LogMsgFailedToRecordDeath  = "Failed to record death stat"
	LogMsgFailedToRecordPotion = "Failed to record potion stat"
	LogMsgFailedToRecordBroken = "Failed to record broken item stat"
)
