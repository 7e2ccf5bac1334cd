package simulator

import "github.com/prometheus/client_golang/prometheus"

var (
	readingsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearable",
		Subsystem: "simulator",
		Name:      "readings_generated_total",
		Help:      "Number of biometric readings generated and persisted.",
	})

	saveFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearable",
		Subsystem: "simulator",
		Name:      "save_failures_total",
		Help:      "Number of tick persistence attempts that failed.",
	})

	totalStepsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wearable",
		Subsystem: "simulator",
		Name:      "total_steps",
		Help:      "Cumulative step counter for the current simulation run.",
	})

	activityTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wearable",
		Subsystem: "simulator",
		Name:      "activity_transitions_total",
		Help:      "Activity level changes, labeled by the new level.",
	}, []string{"level"})
)

func init() {
	prometheus.MustRegister(readingsGenerated, saveFailures, totalStepsGauge, activityTransitions)
}
