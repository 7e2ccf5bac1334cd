// Package simulator generates plausible biometric telemetry for the
// simulated wearable on a fixed cadence.
package simulator

import "math/rand"

// ActivityLevel is the coarse activity state driving all signal generators.
type ActivityLevel string

const (
	ActivityResting  ActivityLevel = "resting"
	ActivityLight    ActivityLevel = "light"
	ActivityModerate ActivityLevel = "moderate"
	ActivityIntense  ActivityLevel = "intense"
)

// transitionProbability is the per-tick chance of redrawing the activity
// level. The person mostly stays in whatever they were doing.
const transitionProbability = 0.2

// TransitionSource yields the activity level for each tick. The engine owns
// one instance; tests substitute a fixed source.
type TransitionSource interface {
	MaybeTransition() ActivityLevel
}

// StateMachine holds the current activity level and redraws it occasionally
// from a distribution biased toward rest.
type StateMachine struct {
	rng   *rand.Rand
	level ActivityLevel
}

// NewStateMachine starts at resting.
func NewStateMachine(rng *rand.Rand) *StateMachine {
	return &StateMachine{rng: rng, level: ActivityResting}
}

// MaybeTransition redraws the level with probability 0.2 and returns the
// (possibly unchanged) current level.
func (m *StateMachine) MaybeTransition() ActivityLevel {
	if m.rng.Float64() < transitionProbability {
		m.level = drawLevel(m.rng)
	}
	return m.level
}

// Level returns the current level without transitioning.
func (m *StateMachine) Level() ActivityLevel {
	return m.level
}

// drawLevel samples from the categorical distribution
// resting 0.4, light 0.3, moderate 0.2, intense 0.1.
func drawLevel(rng *rand.Rand) ActivityLevel {
	r := rng.Float64()
	switch {
	case r < 0.4:
		return ActivityResting
	case r < 0.7:
		return ActivityLight
	case r < 0.9:
		return ActivityModerate
	default:
		return ActivityIntense
	}
}
