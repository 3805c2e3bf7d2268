package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GridClash_Go/internal/domain"
	"github.com/osse101/GridClash_Go/internal/event"
)

func TestEventHandlerFeedsServiceThroughBus(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	bus := event.NewMemoryBus()
	NewEventHandler(svc).Register(bus)

	require.NoError(t, bus.Publish(ctx, event.Event{
		Type: event.DamageTaken,
		Payload: event.DamageTakenPayloadV1{
			EncounterID: "enc", AttackerID: "hero", TargetID: "goblin",
			Amount: 6, Critical: true,
		},
	}))
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type: event.CreatureDied,
		Payload: event.CreatureDiedPayloadV1{
			EncounterID: "enc", CreatureID: "goblin", KillerID: "hero",
		},
	}))
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type: event.PotionConsumed,
		Payload: event.PotionConsumedPayloadV1{
			EncounterID: "enc", CreatureID: "hero", Item: "minor_health_potion", Healed: 4,
		},
	}))
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type: event.ItemBroken,
		Payload: event.ItemBrokenPayloadV1{
			EncounterID: "enc", Item: "longsword", OwnerID: "hero",
		},
	}))
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type: event.EncounterCompleted,
		Payload: event.EncounterCompletedPayloadV1{
			EncounterID: "enc", Survivors: []string{"hero"}, Rounds: 3,
		},
	}))

	summary, err := svc.GetSummary(ctx, "enc")
	require.NoError(t, err)

	assert.True(t, summary.Completed)
	assert.Equal(t, 3, summary.Rounds)

	byID := creaturesByID(summary)
	hero := byID["hero"]
	assert.Equal(t, 6, hero.DamageDealt)
	assert.Equal(t, 1, hero.CriticalHits)
	assert.Equal(t, 1, hero.Kills)
	assert.Equal(t, 1, hero.PotionsDrunk)
	assert.Equal(t, 1, hero.ItemsBroken)
	assert.True(t, byID["goblin"].Died)
}

func TestEventHandlerForgetsEvictedEncounter(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	bus := event.NewMemoryBus()
	NewEventHandler(svc).Register(bus)

	require.NoError(t, bus.Publish(ctx, event.Event{
		Type: event.DamageTaken,
		Payload: event.DamageTakenPayloadV1{
			EncounterID: "enc", AttackerID: "hero", TargetID: "goblin", Amount: 6,
		},
	}))
	_, err := svc.GetSummary(ctx, "enc")
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, event.Event{
		Type: event.EncounterEvicted,
		Payload: event.EncounterEvictedPayloadV1{
			EncounterID: "enc", Reason: "idle",
		},
	}))

	_, err = svc.GetSummary(ctx, "enc")
	assert.ErrorIs(t, err, domain.ErrEncounterNotFound)
}

func TestEventHandlerRejectsUndecodablePayload(t *testing.T) {
	h := NewEventHandler(NewService())

	err := h.HandleDamageTaken(context.Background(), event.Event{
		Type:    event.DamageTaken,
		Payload: make(chan int),
	})

	assert.Error(t, err)
}

func TestEventHandlerSwallowsRecordFailures(t *testing.T) {
	h := NewEventHandler(NewService())

	// Missing encounter ID fails the record but never the handler; combat
	// resolution must not depend on the stats sink.
	err := h.HandleDamageTaken(context.Background(), event.Event{
		Type:    event.DamageTaken,
		Payload: event.DamageTakenPayloadV1{AttackerID: "hero"},
	})

	assert.NoError(t, err)
}
