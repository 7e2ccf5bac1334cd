package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	readingPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wearable",
		Subsystem: "persistence",
		Name:      "last_reading_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent biometric reading persisted to Postgres.",
	})
	sensorEventPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wearable",
		Subsystem: "persistence",
		Name:      "last_sensor_event_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent pushed sensor event persisted to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(readingPersistGauge, sensorEventPersistGauge)
}

// RecordReadingPersisted updates the reading persistence watermark gauge.
func RecordReadingPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	readingPersistGauge.Set(float64(ts.Unix()))
}

// RecordSensorEventPersisted updates the sensor event watermark gauge.
func RecordSensorEventPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	sensorEventPersistGauge.Set(float64(ts.Unix()))
}
