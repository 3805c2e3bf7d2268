package worker

// ============================================================================
// Log Messages
// ============================================================================

// LogMsgJobFailed is logged when a serialized job returns an error
const LogMsgJobFailed = "Encounter job failed"

// ============================================================================
// Error Messages
// ============================================================================

// ErrMsgSerializerStopped is returned when work is submitted after Stop
const ErrMsgSerializerStopped = "serializer stopped"

// ============================================================================
// Defaults
// ============================================================================

// DefaultQueueSize is the default buffered queue depth per serializer
const DefaultQueueSize = 16
