// Package item loads and spawns item definitions.
package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/GridClash_Go/internal/validation"
)

// Sentinel errors for the item loader
var (
	ErrDuplicateInternalName = errors.New("duplicate internal name")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON configuration for items
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items" validate:"required,dive"`
}

// Def represents a single item definition in the JSON
type Def struct {
	InternalName string `json:"internal_name" validate:"required"`
	DisplayName  string `json:"display_name" validate:"required"`
	Kind         string `json:"kind" validate:"required,oneof=weapon armor potion"`

	// Weapon fields
	BaseDamage     int    `json:"base_damage,omitempty" validate:"gte=0"`
	Range          int    `json:"range,omitempty" validate:"gte=0"`
	DamageType     string `json:"damage_type,omitempty"`
	CriticalChance int    `json:"critical_chance,omitempty" validate:"gte=0,lte=100"`

	// Armor fields
	BaseDefense int    `json:"base_defense,omitempty" validate:"gte=0"`
	DefenseType string `json:"defense_type,omitempty"`

	// Shared weapon/armor field
	Durability int `json:"durability,omitempty" validate:"gte=0"`

	// Potion field
	HealAmount int `json:"heal_amount,omitempty" validate:"gte=0"`
}

// Loader handles loading and validating item configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
}

type itemLoader struct {
	schemaValidator validation.SchemaValidator
	schemaPath      string
	validate        *validator.Validate
}

// NewLoader creates a new Loader instance. An empty schemaPath skips the
// JSON-schema pass and relies on struct validation only.
func NewLoader(schemaPath string) Loader {
	return &itemLoader{
		schemaValidator: validation.NewSchemaValidator(),
		schemaPath:      schemaPath,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads and parses an items JSON file
func (l *itemLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	// Validate against schema first
	if l.schemaPath != "" {
		if err := l.schemaValidator.ValidateBytes(data, l.schemaPath); err != nil {
			return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
		}
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	if err := l.Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the item configuration for errors
func (l *itemLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	if err := l.validate.Struct(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	seen := make(map[string]struct{}, len(config.Items))
	for _, def := range config.Items {
		if _, dup := seen[def.InternalName]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateInternalName, def.InternalName)
		}
		seen[def.InternalName] = struct{}{}
	}

	return nil
}
