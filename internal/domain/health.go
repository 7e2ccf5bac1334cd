package domain

// HealthStatus classifies a reading's individual metrics plus an overall verdict.
type HealthStatus struct {
	HeartRate   string `json:"heart_rate"`
	Oxygen      string `json:"oxygen"`
	Temperature string `json:"temperature"`
	Overall     string `json:"overall"`
}

// IsOxygenNormal reports whether SpO2 is at or above the healthy floor.
func (r Reading) IsOxygenNormal() bool {
	return r.OxygenSaturation >= 95.0
}

// IsTemperatureNormal reports whether body temperature sits in the normal band.
func (r Reading) IsTemperatureNormal() bool {
	return r.BodyTemperature >= 36.1 && r.BodyTemperature <= 37.5
}

// HealthStatus derives the per-metric and overall classification.
// Elevated heart rate alone reads as exercise; any low/critical/abnormal
// metric escalates the overall verdict to attention_needed.
func (r Reading) HealthStatus() HealthStatus {
	status := HealthStatus{
		HeartRate:   "normal",
		Oxygen:      "normal",
		Temperature: "normal",
		Overall:     "healthy",
	}

	switch r.Zone().Name {
	case "intense", "maximum":
		status.HeartRate = "elevated"
	}

	if !r.IsOxygenNormal() {
		if r.OxygenSaturation >= 90 {
			status.Oxygen = "low"
		} else {
			status.Oxygen = "critical"
		}
	}

	if !r.IsTemperatureNormal() {
		status.Temperature = "abnormal"
	}

	if status.Oxygen != "normal" || status.Temperature != "normal" {
		status.Overall = "attention_needed"
	} else if status.HeartRate == "elevated" {
		status.Overall = "exercising"
	}

	return status
}
