package domain

// HeartRateZone is a named training bucket with a display color.
type HeartRateZone struct {
	Name  string `json:"name"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Color string `json:"color"`
}

// Zone table ordered by ascending heart rate. Boundaries are half-open:
// a rate equal to Max falls into the next zone.
var heartRateZones = []HeartRateZone{
	{Name: "resting", Min: 0, Max: 60, Color: "#6b7280"},
	{Name: "light", Min: 60, Max: 100, Color: "#10b981"},
	{Name: "moderate", Min: 100, Max: 140, Color: "#f59e0b"},
	{Name: "intense", Min: 140, Max: 170, Color: "#ef4444"},
	{Name: "maximum", Min: 170, Max: 220, Color: "#dc2626"},
}

// ZoneFor maps a heart rate to its zone. Rates beyond the table's upper bound
// land in the maximum zone; the sensor clamps well below it anyway.
func ZoneFor(heartRate int) HeartRateZone {
	for _, zone := range heartRateZones[:len(heartRateZones)-1] {
		if heartRate < zone.Max {
			return zone
		}
	}
	return heartRateZones[len(heartRateZones)-1]
}

// Zone returns the heart-rate zone of the reading.
func (r Reading) Zone() HeartRateZone {
	return ZoneFor(r.HeartRate)
}
