// Package events defines the payloads published to the telemetry stream.
package events

import "time"

// Topics carrying wearable telemetry.
const (
	ReadingsTopic     = "biometric_readings"
	SensorEventsTopic = "proximity_events"
)

// ReadingRecorded is emitted after a biometric reading is persisted.
type ReadingRecorded struct {
	ReadingID        string    `json:"reading_id"`
	HeartRate        int       `json:"heart_rate"`
	Steps            int       `json:"steps"`
	OxygenSaturation float64   `json:"oxygen_saturation"`
	BodyTemperature  float64   `json:"body_temperature"`
	DeviceType       string    `json:"device_type"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// SensorEventReceived is emitted when an external sensor pushes a measurement.
type SensorEventReceived struct {
	EventID    string    `json:"event_id"`
	SensorID   string    `json:"sensor_id"`
	DistanceCM float64   `json:"distance_cm"`
	ReceivedAt time.Time `json:"received_at"`
}
