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

// Chat Metrics
var (
	MessagesTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMessagesTracked,
			Help: HelpTextMessagesTracked,
		},
		[]string{LabelType},
	)

	MessagesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMessagesDropped,
			Help: HelpTextMessagesDropped,
		},
		[]string{LabelType, LabelReason},
	)

	CharsTracked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCharsTracked,
			Help: HelpTextCharsTracked,
		},
	)

	GroupOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGroupOperations,
			Help: HelpTextGroupOperations,
		},
		[]string{LabelOutcome},
	)

	CommandsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsUsed,
			Help: HelpTextCommandsUsed,
		},
		[]string{LabelCommand},
	)

	RetentionDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRetentionDeleted,
			Help: HelpTextRetentionDeleted,
		},
		[]string{LabelTarget},
	)
)
