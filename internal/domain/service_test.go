package domain

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubReadings struct {
	latest      *Reading
	latestErr   error
	history     []Reading
	lastLimit   int
	savedEvents int
}

func (s *stubReadings) SaveReading(ctx context.Context, reading Reading) error { return nil }

func (s *stubReadings) Latest(ctx context.Context) (*Reading, error) {
	return s.latest, s.latestErr
}

func (s *stubReadings) History(ctx context.Context, limit int) ([]Reading, error) {
	s.lastLimit = limit
	return s.history, nil
}

type stubSensors struct {
	err  error
	last *SensorEvent
}

func (s *stubSensors) SaveSensorEvent(ctx context.Context, event SensorEvent) error {
	if s.err != nil {
		return s.err
	}
	s.last = &event
	return nil
}

func TestLatestReadingEmptyStore(t *testing.T) {
	service := NewService(&stubReadings{}, &stubSensors{})

	_, err := service.LatestReading(context.Background())
	if !errors.Is(err, ErrNoReadings) {
		t.Fatalf("expected ErrNoReadings got %v", err)
	}
}

func TestLatestReadingStoreFailureIsNotNoReadings(t *testing.T) {
	service := NewService(&stubReadings{latestErr: errors.New("store broken")}, &stubSensors{})

	_, err := service.LatestReading(context.Background())
	if errors.Is(err, ErrNoReadings) {
		t.Fatal("store failure must not be reported as empty store")
	}
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestTotalStepsEmptyStoreIsZero(t *testing.T) {
	service := NewService(&stubReadings{}, &stubSensors{})

	total, err := service.TotalSteps(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 got %d", total)
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	repo := &stubReadings{}
	service := NewService(repo, &stubSensors{})

	if _, err := service.History(context.Background(), 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != DefaultHistoryLimit {
		t.Fatalf("expected limit %d got %d", DefaultHistoryLimit, repo.lastLimit)
	}

	if _, err := service.History(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != DefaultHistoryLimit {
		t.Fatalf("expected limit %d got %d", DefaultHistoryLimit, repo.lastLimit)
	}

	if _, err := service.History(context.Background(), 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 10 {
		t.Fatalf("expected limit 10 got %d", repo.lastLimit)
	}
}

func TestRecordSensorEventAssignsIDAndTimestamp(t *testing.T) {
	sensors := &stubSensors{}
	service := NewService(&stubReadings{}, sensors)

	before := time.Now().UTC()
	event, err := service.RecordSensorEvent(context.Background(), RecordSensorEventInput{
		SensorID:   "proximidad_01",
		DistanceCM: 12.34,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID == "" {
		t.Fatal("expected a server-assigned id")
	}
	if event.ReceivedAt.Before(before) {
		t.Fatalf("timestamp %v predates the call", event.ReceivedAt)
	}
	if sensors.last == nil || sensors.last.SensorID != "proximidad_01" {
		t.Fatalf("event not stored: %+v", sensors.last)
	}
}

func TestRecordSensorEventPropagatesStoreError(t *testing.T) {
	service := NewService(&stubReadings{}, &stubSensors{err: errors.New("store broken")})

	if _, err := service.RecordSensorEvent(context.Background(), RecordSensorEventInput{SensorID: "x"}); err == nil {
		t.Fatal("expected an error")
	}
}
