package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Combat Metrics
var (
	AttacksResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAttacksResolved,
			Help: HelpTextAttacksResolved,
		},
		[]string{LabelDamageType, LabelCritical},
	)

	DamageDealt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDamageDealt,
			Help: HelpTextDamageDealt,
		},
	)

	CreatureDeaths = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCreatureDeaths,
			Help: HelpTextCreatureDeaths,
		},
	)

	ItemsBroken = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsBroken,
			Help: HelpTextItemsBroken,
		},
	)

	PotionsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePotionsConsumed,
			Help: HelpTextPotionsConsumed,
		},
	)

	EncountersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameEncountersActive,
			Help: HelpTextEncountersActive,
		},
	)

	RoundsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsCompleted,
			Help: HelpTextRoundsCompleted,
		},
	)
)
