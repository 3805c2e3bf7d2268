package domain

import (
	"log/slog"

	"github.com/google/uuid"
)

// Effect mutates the entity it is attached to when applied. Effects are
// attached in order and applied in order.
type Effect interface {
	Apply(e *Entity)
}

// InteractHook is one phase of an entity's interaction.
type InteractHook func(e *Entity)

// ExecuteHook is the type-specific middle phase of an interaction. Every
// concrete entity type must supply one; constructors reject entities
// without it.
type ExecuteHook func(e *Entity) error

// Entity is the shared identity of everything placeable on the grid.
// Creatures and world objects embed it.
type Entity struct {
	ID           uuid.UUID `json:"id"`
	InternalName string    `json:"internal_name"`
	DisplayName  string    `json:"display_name"`
	Pos          Position  `json:"pos"`
	Lootable     bool      `json:"lootable"`
	Removable    bool      `json:"removable"`
	Effects      []Effect  `json:"-"`

	pre     InteractHook
	execute ExecuteHook
	post    InteractHook
}

// newEntity builds the shared identity. The execute hook is required; the
// pre and post phases default to a debug log and a no-op respectively.
func newEntity(internalName, displayName string, pos Position, execute ExecuteHook) (Entity, error) {
	if execute == nil {
		return Entity{}, ErrMissingInteraction
	}
	return Entity{
		ID:           uuid.New(),
		InternalName: internalName,
		DisplayName:  displayName,
		Pos:          pos,
		execute:      execute,
	}, nil
}

// SetPreInteract overrides the default pre-interaction phase.
func (e *Entity) SetPreInteract(hook InteractHook) { e.pre = hook }

// SetPostInteract overrides the default post-interaction phase.
func (e *Entity) SetPostInteract(hook InteractHook) { e.post = hook }

// Interact runs the three interaction phases in order. The caller is
// responsible for announcing the interaction afterwards.
func (e *Entity) Interact() error {
	if e.execute == nil {
		// Only reachable for zero-value entities that bypassed a constructor.
		return ErrMissingInteraction
	}

	if e.pre != nil {
		e.pre(e)
	} else {
		slog.Debug("entity interaction starting",
			"entity_id", e.ID, "entity", e.InternalName)
	}

	err := e.execute(e)

	if e.post != nil {
		e.post(e)
	}

	return err
}

// AddEffect appends an effect. Order of addition is order of application.
func (e *Entity) AddEffect(effect Effect) {
	e.Effects = append(e.Effects, effect)
}

// ApplyEffects applies every attached effect to the entity in order. This is
// a helper for concrete entity behavior; nothing calls it automatically.
func (e *Entity) ApplyEffects() {
	for _, effect := range e.Effects {
		effect.Apply(e)
	}
}

// WorldObject is a non-combatant placeable: obstacle, chest, loose item.
type WorldObject struct {
	Entity

	// Item carried by this object, if it can be picked up. A nil Item is a
	// plain obstacle or scenery.
	Item Item
}

// NewWorldObject creates a world object with the required execute hook.
func NewWorldObject(internalName, displayName string, pos Position, execute ExecuteHook) (*WorldObject, error) {
	base, err := newEntity(internalName, displayName, pos, execute)
	if err != nil {
		return nil, err
	}
	return &WorldObject{Entity: base}, nil
}

// NewItemObject wraps a pickupable item into a placeable world object.
func NewItemObject(item Item, pos Position) (*WorldObject, error) {
	obj, err := NewWorldObject(item.Name(), item.Display(), pos, func(e *Entity) error {
		// Loose items apply their attached effects when poked at.
		e.ApplyEffects()
		return nil
	})
	if err != nil {
		return nil, err
	}
	obj.Lootable = true
	obj.Removable = true
	obj.Item = item
	return obj, nil
}

// NewObstacle creates a non-removable blocking object.
func NewObstacle(internalName, displayName string, pos Position) (*WorldObject, error) {
	obj, err := NewWorldObject(internalName, displayName, pos, func(e *Entity) error {
		slog.Debug("nothing happens", "entity", e.InternalName)
		return nil
	})
	if err != nil {
		return nil, err
	}
	obj.Removable = false
	return obj, nil
}
