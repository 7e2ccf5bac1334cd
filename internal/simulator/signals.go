package simulator

import (
	"math"
	"math/rand"

	"example.com/wearable/internal/domain"
)

type intRange struct {
	lo, hi int
}

type floatRange struct {
	lo, hi float64
}

// Per-state target ranges. Neighbouring states overlap so a transition does
// not produce a visible discontinuity in the signal.
var (
	heartRateTargets = map[ActivityLevel]intRange{
		ActivityResting:  {60, 80},
		ActivityLight:    {90, 110},
		ActivityModerate: {120, 140},
		ActivityIntense:  {150, 175},
	}

	stepIncrements = map[ActivityLevel]intRange{
		ActivityResting:  {0, 2},
		ActivityLight:    {3, 8},
		ActivityModerate: {10, 20},
		ActivityIntense:  {25, 40},
	}

	temperatureBases = map[ActivityLevel]floatRange{
		ActivityResting:  {36.3, 36.8},
		ActivityLight:    {36.6, 37.0},
		ActivityModerate: {36.9, 37.3},
		ActivityIntense:  {37.0, 37.5},
	}
)

// generateHeartRate draws from the state's target range, adds ±5 bpm of
// natural variation, and clamps to the sensor range.
func generateHeartRate(rng *rand.Rand, level ActivityLevel) int {
	target := heartRateTargets[level]
	hr := randIntBetween(rng, target.lo, target.hi) + randIntBetween(rng, -5, 5)
	return clampInt(hr, domain.HeartRateMin, domain.HeartRateMax)
}

// generateStepIncrement draws the number of steps taken since the last tick.
// The cumulative accumulator lives in the engine.
func generateStepIncrement(rng *rand.Rand, level ActivityLevel) int {
	inc := stepIncrements[level]
	return randIntBetween(rng, inc.lo, inc.hi)
}

// generateOxygen draws SpO2. Intense effort pulls the base range down a notch.
func generateOxygen(rng *rand.Rand, level ActivityLevel) float64 {
	base := floatRange{97.0, 100.0}
	if level == ActivityIntense {
		base = floatRange{95.0, 98.0}
	}
	spo2 := randFloatBetween(rng, base.lo, base.hi) + randFloatBetween(rng, -0.5, 0.5)
	return roundTenth(clampFloat(spo2, domain.OxygenMin, domain.OxygenMax))
}

// generateTemperature draws body temperature from the state's base range
// with ±0.1°C of variation.
func generateTemperature(rng *rand.Rand, level ActivityLevel) float64 {
	base := temperatureBases[level]
	temp := randFloatBetween(rng, base.lo, base.hi) + randFloatBetween(rng, -0.1, 0.1)
	return roundTenth(clampFloat(temp, domain.TemperatureMin, domain.TemperatureMax))
}

func randIntBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func randFloatBetween(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
