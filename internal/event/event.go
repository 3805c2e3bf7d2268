package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/GridClash_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Common event types
const (
	DamageTaken        Type = "combat.damage_taken"
	CreatureDied       Type = "combat.creature_died"
	ItemEquipped       Type = "item.equipped"
	ItemBroken         Type = "item.broken"
	DurabilityChanged  Type = "item.durability_changed"
	PotionConsumed     Type = "item.potion_consumed"
	Interacted         Type = "entity.interacted"
	TurnAdvanced       Type = "turn.advanced"
	RoundCompleted     Type = "turn.round_completed"
	EncounterCompleted Type = "encounter.completed"
	EncounterEvicted   Type = "encounter.evicted"
)

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Typed event payloads for type safety

// DamageTakenPayloadV1 announces a resolved hit.
type DamageTakenPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	AttackerID  string `json:"attacker_id"`
	TargetID    string `json:"target_id"`
	Amount      int    `json:"amount"`
	DamageType  string `json:"damage_type"`
	Critical    bool   `json:"critical"`
	Remaining   int    `json:"remaining"`
}

// CreatureDiedPayloadV1 announces a creature's terminal transition. Emitted
// exactly once per creature.
type CreatureDiedPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	CreatureID  string `json:"creature_id"`
	Creature    string `json:"creature"`
	KillerID    string `json:"killer_id,omitempty"`
}

// ItemEquippedPayloadV1 announces a weapon or armor slot change.
type ItemEquippedPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	CreatureID  string `json:"creature_id"`
	Item        string `json:"item"`
	Slot        string `json:"slot"` // "weapon" or "armor"
	Replaced    string `json:"replaced,omitempty"`
}

// DurabilityChangedPayloadV1 announces a durability mutation.
type DurabilityChangedPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	Item        string `json:"item"`
	Durability  int    `json:"durability"`
}

// ItemBrokenPayloadV1 announces a durability crossing to 0. Emitted exactly
// once per crossing.
type ItemBrokenPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	Item        string `json:"item"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// PotionConsumedPayloadV1 announces a potion being drunk on pickup.
type PotionConsumedPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	CreatureID  string `json:"creature_id"`
	Item        string `json:"item"`
	Healed      int    `json:"healed"`
	Remaining   int    `json:"remaining"`
}

// InteractedPayloadV1 announces a completed entity interaction.
type InteractedPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	EntityID    string `json:"entity_id"`
	Entity      string `json:"entity"`
	ActorID     string `json:"actor_id,omitempty"`
}

// TurnAdvancedPayloadV1 announces the rotation moving one slot.
type TurnAdvancedPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	CreatureID  string `json:"creature_id"`
	Creature    string `json:"creature"`
	Round       int    `json:"round"`
}

// RoundCompletedPayloadV1 announces the rotation wrapping to its first slot.
type RoundCompletedPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	Round       int    `json:"round"`
}

// EncounterEvictedPayloadV1 announces an encounter leaving the registry.
// Read models keyed by encounter must release their records on this event.
type EncounterEvictedPayloadV1 struct {
	EncounterID string `json:"encounter_id"`
	Reason      string `json:"reason"` // "abandoned", "idle" or "shutdown"
}

// EncounterCompletedPayloadV1 announces one side being eliminated.
type EncounterCompletedPayloadV1 struct {
	EncounterID string   `json:"encounter_id"`
	Survivors   []string `json:"survivors"`
	Rounds      int      `json:"rounds"`
}

// Type-safe event constructors

// NewDamageTakenEvent creates a damage-taken event.
func NewDamageTakenEvent(encounterID uuid.UUID, attacker, target *domain.Creature, hit domain.HitResult, critical bool) Event {
	damageType := domain.DamagePhysical
	if attacker.Weapon != nil {
		damageType = attacker.Weapon.DamageType
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    DamageTaken,
		Payload: DamageTakenPayloadV1{
			EncounterID: encounterID.String(),
			AttackerID:  attacker.ID.String(),
			TargetID:    target.ID.String(),
			Amount:      hit.DamageTaken,
			DamageType:  string(damageType),
			Critical:    critical,
			Remaining:   hit.Remaining,
		},
	}
}

// NewCreatureDiedEvent creates a creature-died event.
func NewCreatureDiedEvent(encounterID uuid.UUID, creature *domain.Creature, killerID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CreatureDied,
		Payload: CreatureDiedPayloadV1{
			EncounterID: encounterID.String(),
			CreatureID:  creature.ID.String(),
			Creature:    creature.InternalName,
			KillerID:    killerID,
		},
	}
}

// NewItemEquippedEvent creates an item-equipped event.
func NewItemEquippedEvent(encounterID uuid.UUID, creature *domain.Creature, item domain.Item, slot string, replaced domain.Item) Event {
	payload := ItemEquippedPayloadV1{
		EncounterID: encounterID.String(),
		CreatureID:  creature.ID.String(),
		Item:        item.Name(),
		Slot:        slot,
	}
	if replaced != nil {
		payload.Replaced = replaced.Name()
	}
	return Event{Version: EventSchemaVersion, Type: ItemEquipped, Payload: payload}
}

// NewDurabilityChangedEvent creates a durability-changed event.
func NewDurabilityChangedEvent(encounterID uuid.UUID, item domain.Item, durability int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DurabilityChanged,
		Payload: DurabilityChangedPayloadV1{
			EncounterID: encounterID.String(),
			Item:        item.Name(),
			Durability:  durability,
		},
	}
}

// NewItemBrokenEvent creates an item-broken event.
func NewItemBrokenEvent(encounterID uuid.UUID, item domain.Item, ownerID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemBroken,
		Payload: ItemBrokenPayloadV1{
			EncounterID: encounterID.String(),
			Item:        item.Name(),
			OwnerID:     ownerID,
		},
	}
}

// NewPotionConsumedEvent creates a potion-consumed event.
func NewPotionConsumedEvent(encounterID uuid.UUID, creature *domain.Creature, potion *domain.HealthPotion, healed int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PotionConsumed,
		Payload: PotionConsumedPayloadV1{
			EncounterID: encounterID.String(),
			CreatureID:  creature.ID.String(),
			Item:        potion.InternalName,
			Healed:      healed,
			Remaining:   creature.LifePoints,
		},
	}
}

// NewInteractedEvent creates an interacted event.
func NewInteractedEvent(encounterID uuid.UUID, entity *domain.Entity, actorID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Interacted,
		Payload: InteractedPayloadV1{
			EncounterID: encounterID.String(),
			EntityID:    entity.ID.String(),
			Entity:      entity.InternalName,
			ActorID:     actorID,
		},
	}
}

// NewTurnAdvancedEvent creates a turn-advanced event.
func NewTurnAdvancedEvent(encounterID uuid.UUID, creature *domain.Creature, round int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TurnAdvanced,
		Payload: TurnAdvancedPayloadV1{
			EncounterID: encounterID.String(),
			CreatureID:  creature.ID.String(),
			Creature:    creature.InternalName,
			Round:       round,
		},
	}
}

// NewRoundCompletedEvent creates a round-completed event.
func NewRoundCompletedEvent(encounterID uuid.UUID, round int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundCompleted,
		Payload: RoundCompletedPayloadV1{
			EncounterID: encounterID.String(),
			Round:       round,
		},
	}
}

// NewEncounterCompletedEvent creates an encounter-completed event.
func NewEncounterCompletedEvent(encounterID uuid.UUID, survivors []string, rounds int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EncounterCompleted,
		Payload: EncounterCompletedPayloadV1{
			EncounterID: encounterID.String(),
			Survivors:   survivors,
			Rounds:      rounds,
		},
	}
}

// NewEncounterEvictedEvent creates an encounter-evicted event.
func NewEncounterEvictedEvent(encounterID uuid.UUID, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EncounterEvicted,
		Payload: EncounterEvictedPayloadV1{
			EncounterID: encounterID.String(),
			Reason:      reason,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus. Fan-out is
// synchronous and in subscription order within the triggering call, which
// the turn-based core relies on for deterministic combat logs.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
