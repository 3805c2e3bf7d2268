package item

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/GridClash_Go/internal/domain"
	"github.com/osse101/GridClash_Go/internal/logger"
)

// Registry resolves item definitions by internal name and spawns fresh
// domain item instances from them. Definitions are cached in an expiring
// LRU so edits to the items file are picked up without a restart once the
// cached entries age out.
type Registry struct {
	loader Loader
	path   string
	cache  *expirable.LRU[string, *Def]
}

// NewRegistry creates a registry over the given items file. The initial
// load is eager so a broken config fails at startup, not mid-encounter.
func NewRegistry(loader Loader, path string, ttl time.Duration) (*Registry, error) {
	r := &Registry{
		loader: loader,
		path:   path,
		cache:  expirable.NewLRU[string, *Def](TemplateCacheSize, nil, ttl),
	}
	if _, err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Definition returns the cached definition for an internal name, reloading
// the items file on a cache miss.
func (r *Registry) Definition(internalName string) (*Def, error) {
	if def, ok := r.cache.Get(internalName); ok {
		return def, nil
	}

	config, err := r.reload()
	if err != nil {
		return nil, err
	}

	for i := range config.Items {
		if config.Items[i].InternalName == internalName {
			return &config.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, internalName)
}

// Spawn creates a fresh domain item from a definition. Every spawn gets
// its own durability state.
func (r *Registry) Spawn(internalName string) (domain.Item, error) {
	def, err := r.Definition(internalName)
	if err != nil {
		return nil, err
	}

	switch def.Kind {
	case KindWeapon:
		return domain.NewAttackItem(
			def.InternalName, def.DisplayName,
			def.BaseDamage, def.Range,
			domain.DamageType(def.DamageType),
			def.CriticalChance, def.Durability,
		), nil
	case KindArmor:
		return domain.NewDefenceItem(
			def.InternalName, def.DisplayName,
			def.BaseDefense,
			domain.DefenseType(def.DefenseType),
			def.Durability,
		), nil
	case KindPotion:
		return domain.NewHealthPotion(def.InternalName, def.DisplayName, def.HealAmount), nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrInvalidConfig, def.Kind)
	}
}

// CheckHealth reports whether the items file is still loadable. The readiness
// probe calls this.
func (r *Registry) CheckHealth() error {
	_, err := r.loader.Load(r.path)
	return err
}

// Names lists every known internal name, from a fresh read of the file.
func (r *Registry) Names() ([]string, error) {
	config, err := r.loader.Load(r.path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(config.Items))
	for _, def := range config.Items {
		names = append(names, def.InternalName)
	}
	return names, nil
}

func (r *Registry) reload() (*Config, error) {
	config, err := r.loader.Load(r.path)
	if err != nil {
		return nil, fmt.Errorf("reloading item definitions: %w", err)
	}

	for i := range config.Items {
		def := &config.Items[i]
		r.cache.Add(def.InternalName, def)
	}

	logger.Debug("item definitions loaded",
		"path", r.path, "count", len(config.Items))
	return config, nil
}
