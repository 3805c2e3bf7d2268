package item

// Item kinds in the definitions file
const (
	KindWeapon = "weapon"
	KindArmor  = "armor"
	KindPotion = "potion"
)

// Registry cache tuning
const (
	// TemplateCacheSize bounds the number of cached definitions.
	TemplateCacheSize = 256
)

// Error message formats
const (
	ErrMsgReadConfigFileFailed = "failed to read item config: %w"
	ErrMsgParseConfigFailed    = "failed to parse item config: %w"
)
