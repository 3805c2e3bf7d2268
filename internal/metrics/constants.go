package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Combat metric names
const (
	MetricNameAttacksResolved  = "attacks_resolved_total"
	MetricNameDamageDealt      = "damage_dealt_total"
	MetricNameCreatureDeaths   = "creature_deaths_total"
	MetricNameItemsBroken      = "items_broken_total"
	MetricNamePotionsConsumed  = "potions_consumed_total"
	MetricNameEncountersActive = "encounters_active"
	MetricNameRoundsCompleted  = "rounds_completed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Combat metric help text
const (
	HelpTextAttacksResolved  = "Total number of resolved attacks"
	HelpTextDamageDealt      = "Total damage delivered to creatures"
	HelpTextCreatureDeaths   = "Total number of creature deaths"
	HelpTextItemsBroken      = "Total number of items worn down to zero durability"
	HelpTextPotionsConsumed  = "Total number of potions consumed"
	HelpTextEncountersActive = "Current number of registered encounters"
	HelpTextRoundsCompleted  = "Total number of completed rounds"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelDamageType = "damage_type"
	LabelCritical   = "critical"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
