package config

const (
	// Configuration file paths
	ConfigPathItems       = "configs/items/items.json"
	ConfigPathItemsSchema = "configs/schemas/items.schema.json"
)

// Environment variable names
const (
	EnvPort         = "PORT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvServiceName  = "SERVICE_NAME"
	EnvVersion      = "VERSION"
	EnvEnvironment  = "ENVIRONMENT"
	EnvWorldMaxX    = "WORLD_MAX_X"
	EnvWorldMaxY    = "WORLD_MAX_Y"
	EnvDifficulty   = "DIFFICULTY"
	EnvItemsPath    = "ITEMS_CONFIG"
	EnvDeadLetter   = "DEADLETTER_PATH"
	EnvEncounterTTL = "ENCOUNTER_TTL_SECONDS"

	EnvAPIKey         = "API_KEY"
	EnvTrustedProxies = "TRUSTED_PROXIES"
)

// Defaults
const (
	DefaultPort           = 8080
	DefaultWorldMaxX      = 10
	DefaultWorldMaxY      = 10
	DefaultEncounterTTL   = 3600
	DefaultDeadLetterPath = "logs/deadletter.jsonl"
)
