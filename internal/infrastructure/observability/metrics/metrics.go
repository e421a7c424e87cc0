package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Aggregations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "aggregations_total",
			Help:      "Total number of aggregations by transport and outcome",
		},
		[]string{"transport", "outcome"},
	)

	Elements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "elements_total",
			Help:      "Total number of aggregated elements by JSON kind",
		},
		[]string{"kind"},
	)

	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tally",
			Name:      "aggregation_duration_seconds",
			Help:      "Aggregation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		},
		[]string{"transport"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tally",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	JobsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "jobs_enqueued_total",
			Help:      "Total number of aggregation jobs enqueued",
		},
		[]string{"queue"},
	)

	TasksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "tasks_processed_total",
			Help:      "Total number of tasks processed",
		},
		[]string{"type", "status"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tally",
			Name:      "task_duration_seconds",
			Help:      "Task processing duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 15),
		},
		[]string{"type"},
	)

	CookbookEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "cookbook_entries_total",
			Help:      "Total number of cookbook entries created",
		},
		[]string{"type"},
	)
)

func RecordAggregation(transport, outcome string, seconds float64) {
	Aggregations.WithLabelValues(transport, outcome).Inc()
	AggregationDuration.WithLabelValues(transport).Observe(seconds)
}

func RecordElements(kind string, count int) {
	Elements.WithLabelValues(kind).Add(float64(count))
}

func RecordHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordJobEnqueued(queue string) {
	JobsEnqueued.WithLabelValues(queue).Inc()
}

func RecordTaskProcessed(taskType, status string) {
	TasksProcessed.WithLabelValues(taskType, status).Inc()
}

func RecordTaskDuration(taskType string, seconds float64) {
	TaskDuration.WithLabelValues(taskType).Observe(seconds)
}

func RecordCookbookEntry(entryType string) {
	CookbookEntries.WithLabelValues(entryType).Inc()
}
