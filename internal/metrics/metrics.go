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

// Dispatch Metrics
var (
	CommandsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsExecuted,
			Help: HelpTextCommandsExecuted,
		},
		[]string{LabelTrigger, LabelSystem},
	)

	CommandsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsRejected,
			Help: HelpTextCommandsRejected,
		},
		[]string{LabelTrigger, LabelReason},
	)

	CommandsMutated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsMutated,
			Help: HelpTextCommandsMutated,
		},
		[]string{LabelMutation},
	)

	MessagesHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMessagesHandled,
			Help: HelpTextMessagesHandled,
		},
		[]string{LabelPlatform, LabelMatched},
	)
)

// Wager Metrics
var (
	SpinsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpinsCompleted,
			Help: HelpTextSpinsCompleted,
		},
	)

	SpinsAborted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsAborted,
			Help: HelpTextSpinsAborted,
		},
		[]string{LabelStage},
	)

	AmountWagered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAmountWagered,
			Help: HelpTextAmountWagered,
		},
	)

	AmountWon = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAmountWon,
			Help: HelpTextAmountWon,
		},
	)

	ReelHits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameReelHits,
			Help:    HelpTextReelHits,
			Buckets: ReelHitBuckets,
		},
	)
)
