package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GridClash_Go/internal/event"
)

func TestHandleEventCountsDamage(t *testing.T) {
	collector := NewEventMetricsCollector()

	before := testutil.ToFloat64(DamageDealt)
	attacksBefore := testutil.ToFloat64(AttacksResolved.WithLabelValues("PHYSICAL", "true"))

	err := collector.HandleEvent(context.Background(), event.Event{
		Type: event.DamageTaken,
		Payload: event.DamageTakenPayloadV1{
			EncounterID: "enc", Amount: 7, DamageType: "PHYSICAL", Critical: true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, before+7, testutil.ToFloat64(DamageDealt))
	assert.Equal(t, attacksBefore+1, testutil.ToFloat64(AttacksResolved.WithLabelValues("PHYSICAL", "true")))
}

func TestHandleEventCountsLifecycleEvents(t *testing.T) {
	collector := NewEventMetricsCollector()
	ctx := context.Background()

	deathsBefore := testutil.ToFloat64(CreatureDeaths)
	brokenBefore := testutil.ToFloat64(ItemsBroken)
	potionsBefore := testutil.ToFloat64(PotionsConsumed)
	roundsBefore := testutil.ToFloat64(RoundsCompleted)

	require.NoError(t, collector.HandleEvent(ctx, event.Event{Type: event.CreatureDied}))
	require.NoError(t, collector.HandleEvent(ctx, event.Event{Type: event.ItemBroken}))
	require.NoError(t, collector.HandleEvent(ctx, event.Event{Type: event.PotionConsumed}))
	require.NoError(t, collector.HandleEvent(ctx, event.Event{Type: event.RoundCompleted}))

	assert.Equal(t, deathsBefore+1, testutil.ToFloat64(CreatureDeaths))
	assert.Equal(t, brokenBefore+1, testutil.ToFloat64(ItemsBroken))
	assert.Equal(t, potionsBefore+1, testutil.ToFloat64(PotionsConsumed))
	assert.Equal(t, roundsBefore+1, testutil.ToFloat64(RoundsCompleted))
}

func TestHandleEventRejectsUndecodableDamagePayload(t *testing.T) {
	collector := NewEventMetricsCollector()

	err := collector.HandleEvent(context.Background(), event.Event{
		Type:    event.DamageTaken,
		Payload: make(chan int),
	})

	assert.Error(t, err)
}

func TestRegisterSubscribesToCombatEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	deathsBefore := testutil.ToFloat64(CreatureDeaths)
	require.NoError(t, bus.Publish(context.Background(), event.Event{Type: event.CreatureDied}))
	assert.Equal(t, deathsBefore+1, testutil.ToFloat64(CreatureDeaths))
}
