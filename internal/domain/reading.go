// Package domain defines the biometric reading model and query logic for the
// simulated wearable device.
package domain

import "time"

// Device metadata stamped onto every persisted reading.
const (
	DeviceType      = "ESP32_Wearable"
	FirmwareVersion = "1.0.0"
	SensorStatus    = "active"
)

// Sensor limits enforced on every reading. Generators clamp to these after
// adding noise, so stored values never leave the device's advertised ranges.
const (
	HeartRateMin = 60
	HeartRateMax = 180

	OxygenMin = 95.0
	OxygenMax = 100.0

	TemperatureMin = 36.1
	TemperatureMax = 37.5
)

// Reading is one biometric sample captured by the simulated wearable.
// Values are immutable once constructed.
type Reading struct {
	ID               string
	HeartRate        int     // bpm
	Steps            int     // cumulative within a simulator run
	OxygenSaturation float64 // percent, one decimal
	BodyTemperature  float64 // °C, one decimal
	Timestamp        time.Time
}

// SensorEvent is an externally pushed proximity measurement.
type SensorEvent struct {
	ID         string
	SensorID   string
	DistanceCM float64
	ReceivedAt time.Time
}
