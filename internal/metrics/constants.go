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

// Dispatch metric names
const (
	MetricNameCommandsExecuted = "commands_executed_total"
	MetricNameCommandsRejected = "commands_rejected_total"
	MetricNameCommandsMutated  = "commands_mutated_total"
	MetricNameMessagesHandled  = "chat_messages_handled_total"
)

// Wager metric names
const (
	MetricNameSpinsCompleted = "slots_spins_completed_total"
	MetricNameSpinsAborted   = "slots_spins_aborted_total"
	MetricNameAmountWagered  = "slots_amount_wagered_total"
	MetricNameAmountWon      = "slots_amount_won_total"
	MetricNameReelHits       = "slots_reel_hits"
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

// Dispatch metric help text
const (
	HelpTextCommandsExecuted = "Total number of commands that passed the gate and ran"
	HelpTextCommandsRejected = "Total number of invocations halted by the gate"
	HelpTextCommandsMutated  = "Total number of custom command changes"
	HelpTextMessagesHandled  = "Total number of chat messages processed by the gate"
)

// Wager metric help text
const (
	HelpTextSpinsCompleted = "Total number of spins that paid out"
	HelpTextSpinsAborted   = "Total number of spins stopped by a ledger failure"
	HelpTextAmountWagered  = "Total currency wagered on completed spins"
	HelpTextAmountWon      = "Total currency paid out by completed spins"
	HelpTextReelHits       = "Successful reels per completed spin"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelTrigger  = "trigger"
	LabelSystem   = "system"
	LabelReason   = "reason"
	LabelMutation = "mutation"
	LabelStage    = "stage"
	LabelMatched  = "matched"
	LabelPlatform = "platform"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ReelHitBuckets has one bucket per possible hit count
var ReelHitBuckets = []float64{0, 1, 2, 3}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
