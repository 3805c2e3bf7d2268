package stats

import (
	"context"
	"fmt"

	"github.com/osse101/GridClash_Go/internal/event"
	"github.com/osse101/GridClash_Go/internal/logger"
)

// EventHandler feeds combat events into the stats service
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new stats event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{
		service: service,
	}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.DamageTaken, h.HandleDamageTaken)
	bus.Subscribe(event.CreatureDied, h.HandleCreatureDied)
	bus.Subscribe(event.PotionConsumed, h.HandlePotionConsumed)
	bus.Subscribe(event.ItemBroken, h.HandleItemBroken)
	bus.Subscribe(event.EncounterCompleted, h.HandleEncounterCompleted)
	bus.Subscribe(event.EncounterEvicted, h.HandleEncounterEvicted)
}

// HandleDamageTaken records a resolved hit
func (h *EventHandler) HandleDamageTaken(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.DamageTakenPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeDamagePayload, err)
	}

	if err := h.service.RecordDamage(ctx, payload.EncounterID, payload.AttackerID, payload.TargetID, payload.Amount, payload.Critical); err != nil {
		log.Warn(LogMsgFailedToRecordDamage, "error", err, "encounter_id", payload.EncounterID)
	}
	return nil
}

// HandleCreatureDied records a creature death
func (h *EventHandler) HandleCreatureDied(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.CreatureDiedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeDeathPayload, err)
	}

	if err := h.service.RecordDeath(ctx, payload.EncounterID, payload.CreatureID, payload.KillerID); err != nil {
		log.Warn(LogMsgFailedToRecordDeath, "error", err, "encounter_id", payload.EncounterID)
	}
	return nil
}

// HandlePotionConsumed records a potion being drunk
func (h *EventHandler) HandlePotionConsumed(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.PotionConsumedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodePotionPayload, err)
	}

	if err := h.service.RecordPotion(ctx, payload.EncounterID, payload.CreatureID, payload.Healed); err != nil {
		log.Warn(LogMsgFailedToRecordPotion, "error", err, "encounter_id", payload.EncounterID)
	}
	return nil
}

// HandleItemBroken records an item wearing out
func (h *EventHandler) HandleItemBroken(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.ItemBrokenPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeBrokenPayload, err)
	}

	if err := h.service.RecordBrokenItem(ctx, payload.EncounterID, payload.OwnerID); err != nil {
		log.Warn(LogMsgFailedToRecordBroken, "error", err, "encounter_id", payload.EncounterID)
	}
	return nil
}

// HandleEncounterCompleted closes the encounter's record
func (h *EventHandler) HandleEncounterCompleted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.EncounterCompletedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeCompletePayload, err)
	}

	return h.service.RecordCompletion(ctx, payload.EncounterID, payload.Survivors, payload.Rounds)
}

// HandleEncounterEvicted releases the evicted encounter's record. Without
// this, records would accumulate for the process lifetime.
func (h *EventHandler) HandleEncounterEvicted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.EncounterEvictedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeEvictedPayload, err)
	}

	h.service.Forget(ctx, payload.EncounterID)
	return nil
}
