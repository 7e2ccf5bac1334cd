package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoReadings is returned when the store holds no readings yet.
// Callers must treat it as an empty result, not a store failure.
var ErrNoReadings = errors.New("no readings recorded")

// DefaultHistoryLimit bounds history queries when the caller does not
// specify a limit, and caps the limit when it does.
const DefaultHistoryLimit = 50

// ReadingRepository captures persistence operations for biometric readings.
// Lookups return (nil, nil) when no row matches; the service layers
// ErrNoReadings on top so API code can distinguish empty from broken.
type ReadingRepository interface {
	SaveReading(ctx context.Context, reading Reading) error
	Latest(ctx context.Context) (*Reading, error)
	History(ctx context.Context, limit int) ([]Reading, error)
}

// SensorEventRepository persists externally pushed sensor events.
type SensorEventRepository interface {
	SaveSensorEvent(ctx context.Context, event SensorEvent) error
}

// Service answers telemetry queries and records pushed sensor events.
type Service struct {
	readings ReadingRepository
	sensors  SensorEventRepository
}

// NewService constructs a Service.
func NewService(readings ReadingRepository, sensors SensorEventRepository) *Service {
	return &Service{readings: readings, sensors: sensors}
}

// LatestReading returns the most recent reading or ErrNoReadings.
func (s *Service) LatestReading(ctx context.Context) (*Reading, error) {
	reading, err := s.readings.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, ErrNoReadings
	}
	return reading, nil
}

// History returns up to limit recent readings, newest first. A non-positive
// or oversized limit falls back to DefaultHistoryLimit.
func (s *Service) History(ctx context.Context, limit int) ([]Reading, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return s.readings.History(ctx, limit)
}

// TotalSteps reports the latest reading's cumulative step count, or 0 when
// nothing has been recorded yet.
func (s *Service) TotalSteps(ctx context.Context) (int, error) {
	reading, err := s.readings.Latest(ctx)
	if err != nil {
		return 0, err
	}
	if reading == nil {
		return 0, nil
	}
	return reading.Steps, nil
}

// CurrentZone maps the latest reading's heart rate to a zone.
func (s *Service) CurrentZone(ctx context.Context) (*Reading, HeartRateZone, error) {
	reading, err := s.LatestReading(ctx)
	if err != nil {
		return nil, HeartRateZone{}, err
	}
	return reading, reading.Zone(), nil
}

// RecordSensorEventInput carries the validated proximity payload.
type RecordSensorEventInput struct {
	SensorID   string
	DistanceCM float64
}

// RecordSensorEvent stores a pushed sensor event with a server-assigned
// identifier and timestamp.
func (s *Service) RecordSensorEvent(ctx context.Context, input RecordSensorEventInput) (*SensorEvent, error) {
	event := SensorEvent{
		ID:         uuid.NewString(),
		SensorID:   input.SensorID,
		DistanceCM: input.DistanceCM,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.sensors.SaveSensorEvent(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}
