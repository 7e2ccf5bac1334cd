package simulator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeartRateStaysWithinSensorRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cases := map[ActivityLevel]intRange{
		ActivityResting:  {55, 85},
		ActivityLight:    {85, 115},
		ActivityModerate: {115, 145},
		ActivityIntense:  {145, 180},
	}

	for level, bounds := range cases {
		for i := 0; i < 1000; i++ {
			hr := generateHeartRate(rng, level)
			require.GreaterOrEqual(t, hr, 60, "level=%s", level)
			require.LessOrEqual(t, hr, 180, "level=%s", level)
			// Target range plus noise, before clamping.
			require.GreaterOrEqual(t, hr, clampInt(bounds.lo, 60, 180), "level=%s", level)
			require.LessOrEqual(t, hr, clampInt(bounds.hi, 60, 180), "level=%s", level)
		}
	}
}

func TestStepIncrementMatchesActivityLevel(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	cases := map[ActivityLevel]intRange{
		ActivityResting:  {0, 2},
		ActivityLight:    {3, 8},
		ActivityModerate: {10, 20},
		ActivityIntense:  {25, 40},
	}

	for level, bounds := range cases {
		for i := 0; i < 1000; i++ {
			inc := generateStepIncrement(rng, level)
			require.GreaterOrEqual(t, inc, bounds.lo, "level=%s", level)
			require.LessOrEqual(t, inc, bounds.hi, "level=%s", level)
		}
	}
}

func TestOxygenClampedAndRounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for _, level := range []ActivityLevel{ActivityResting, ActivityLight, ActivityModerate, ActivityIntense} {
		for i := 0; i < 1000; i++ {
			spo2 := generateOxygen(rng, level)
			require.GreaterOrEqual(t, spo2, 95.0, "level=%s", level)
			require.LessOrEqual(t, spo2, 100.0, "level=%s", level)
			requireOneDecimal(t, spo2)
		}
	}
}

func TestTemperatureClampedAndRounded(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for _, level := range []ActivityLevel{ActivityResting, ActivityLight, ActivityModerate, ActivityIntense} {
		for i := 0; i < 1000; i++ {
			temp := generateTemperature(rng, level)
			require.GreaterOrEqual(t, temp, 36.1, "level=%s", level)
			require.LessOrEqual(t, temp, 37.5, "level=%s", level)
			requireOneDecimal(t, temp)
		}
	}
}

func requireOneDecimal(t *testing.T, v float64) {
	t.Helper()
	scaled := v * 10
	require.InDelta(t, math.Round(scaled), scaled, 1e-9, "value %v should have one decimal", v)
}
