package domain

import "testing"

func TestHealthStatusHealthy(t *testing.T) {
	reading := Reading{HeartRate: 72, OxygenSaturation: 98.0, BodyTemperature: 36.6}
	status := reading.HealthStatus()

	if status.Overall != "healthy" {
		t.Fatalf("expected healthy got %s", status.Overall)
	}
	if status.HeartRate != "normal" || status.Oxygen != "normal" || status.Temperature != "normal" {
		t.Fatalf("unexpected per-metric status: %+v", status)
	}
}

func TestHealthStatusExercising(t *testing.T) {
	reading := Reading{HeartRate: 155, OxygenSaturation: 96.5, BodyTemperature: 37.2}
	status := reading.HealthStatus()

	if status.HeartRate != "elevated" {
		t.Fatalf("expected elevated heart rate got %s", status.HeartRate)
	}
	if status.Overall != "exercising" {
		t.Fatalf("expected exercising got %s", status.Overall)
	}
}

func TestHealthStatusLowOxygenNeedsAttention(t *testing.T) {
	reading := Reading{HeartRate: 80, OxygenSaturation: 93.5, BodyTemperature: 36.8}
	status := reading.HealthStatus()

	if status.Oxygen != "low" {
		t.Fatalf("expected low oxygen got %s", status.Oxygen)
	}
	if status.Overall != "attention_needed" {
		t.Fatalf("expected attention_needed got %s", status.Overall)
	}
}

func TestHealthStatusCriticalOxygen(t *testing.T) {
	reading := Reading{HeartRate: 80, OxygenSaturation: 89.0, BodyTemperature: 36.8}
	status := reading.HealthStatus()

	if status.Oxygen != "critical" {
		t.Fatalf("expected critical oxygen got %s", status.Oxygen)
	}
	if status.Overall != "attention_needed" {
		t.Fatalf("expected attention_needed got %s", status.Overall)
	}
}
