package encounter

// ============================================================================
// Engine Defaults
// ============================================================================

// UnarmedRange is the attack reach of a creature with no functional weapon
const UnarmedRange = 1

// MoveRange is how far a creature may step in one move action
const MoveRange = 1

// ArmorWearPerHit is the durability cost armor pays for each hit received
const ArmorWearPerHit = 1

// ============================================================================
// Error Messages
// ============================================================================

// Validation error messages
const (
	ErrMsgNoCreatures     = "encounter needs at least one creature"
	ErrMsgUnplacedEntity  = "entity could not be placed: %s at %s"
	ErrMsgSpawnItemFailed = "failed to spawn item %q: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

// Engine log messages
const (
	LogMsgAttackResolved       = "Attack resolved"
	LogMsgCreatureDied         = "Creature died"
	LogMsgItemPickedUp         = "Item picked up"
	LogMsgCreatureMoved        = "Creature moved"
	LogMsgTurnAdvanced         = "Turn advanced"
	LogMsgEncounterOver        = "Encounter completed"
	LogMsgEncounterCreated     = "Encounter created"
	LogMsgEncounterEvicted     = "Encounter evicted"
	LogMsgEvictNoticeFailed    = "Failed to publish eviction notice"
	LogMsgItemNamesUnavailable = "Item names unavailable for registration"
	LogMsgPublishFailed        = "Failed to publish event"
)
