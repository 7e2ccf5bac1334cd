package outbox

import "github.com/prometheus/client_golang/prometheus"

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearable",
		Subsystem: "outbox",
		Name:      "events_delivered_total",
		Help:      "Number of telemetry events successfully published to Kafka.",
	})

	failedBatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearable",
		Subsystem: "outbox",
		Name:      "batch_failures_total",
		Help:      "Number of dispatch iterations that failed; rows are retried next poll.",
	})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wearable",
		Subsystem: "outbox",
		Name:      "batch_duration_seconds",
		Help:      "Time spent fetching, delivering, and marking outbox batches.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedBatches, batchDuration)
}
