package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/GridClash_Go/internal/event"
	"github.com/osse101/GridClash_Go/internal/logger"
)

// EventMetricsCollector subscribes to combat events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.DamageTaken,
		event.CreatureDied,
		event.ItemBroken,
		event.PotionConsumed,
		event.RoundCompleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.DamageTaken:
		payload, err := event.DecodePayload[event.DamageTakenPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		AttacksResolved.WithLabelValues(payload.DamageType, strconv.FormatBool(payload.Critical)).Inc()
		DamageDealt.Add(float64(payload.Amount))

	case event.CreatureDied:
		CreatureDeaths.Inc()

	case event.ItemBroken:
		ItemsBroken.Inc()

	case event.PotionConsumed:
		PotionsConsumed.Inc()

	case event.RoundCompleted:
		RoundsCompleted.Inc()
	}

	log.Debug("metrics recorded", "type", evt.Type)
	return nil
}
