package simulator

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/wearable/internal/domain"
)

// ReadingWriter is the slice of the store the engine needs.
type ReadingWriter interface {
	SaveReading(ctx context.Context, reading domain.Reading) error
}

const (
	// stopTimeout bounds how long Stop waits for the loop to observe
	// cancellation. Expiry is a liveness concern only; the loop still exits
	// on its next check.
	stopTimeout = 5 * time.Second

	// After backoffFailureThreshold consecutive save failures the effective
	// interval doubles per additional failure, capped at backoffMaxMultiplier
	// times the configured tick. One success restores the normal cadence.
	backoffFailureThreshold = 5
	backoffMaxMultiplier    = 8
)

// Status is an immutable snapshot of engine state.
type Status struct {
	Running             bool
	ActivityLevel       ActivityLevel
	TotalSteps          int
	BaselineHeartRate   int
	TickInterval        time.Duration
	ReadingsGenerated   int64
	ConsecutiveFailures int
	LastError           string
}

// Engine owns the activity state machine and the step accumulator, and runs
// the periodic generation loop. All mutable fields are guarded by mu; the
// loop writes them while HTTP handlers read snapshots or reset the steps.
type Engine struct {
	store             ReadingWriter
	tickInterval      time.Duration
	baselineHeartRate int
	logger            *log.Logger

	mu                  sync.Mutex
	rng                 *rand.Rand
	levels              TransitionSource
	running             bool
	level               ActivityLevel
	totalSteps          int
	readingsGenerated   int64
	consecutiveFailures int
	lastError           string
	cancel              context.CancelFunc
	loopDone            chan struct{}
}

// Option configures optional engine behaviour.
type Option func(*Engine)

// WithLogger overrides the engine logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithRand seeds the engine with a deterministic random source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithTransitionSource substitutes the activity state machine.
func WithTransitionSource(src TransitionSource) Option {
	return func(e *Engine) { e.levels = src }
}

// NewEngine constructs a stopped engine.
func NewEngine(store ReadingWriter, tickInterval time.Duration, baselineHeartRate int, opts ...Option) *Engine {
	e := &Engine{
		store:             store,
		tickInterval:      tickInterval,
		baselineHeartRate: baselineHeartRate,
		level:             ActivityResting,
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:            log.New(log.Writer(), "[engine] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.levels == nil {
		e.levels = NewStateMachine(e.rng)
	}
	return e
}

// Start launches the generation loop on its own goroutine and returns
// immediately. Starting a running engine is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		e.logger.Printf("start ignored: engine already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.loopDone = make(chan struct{})
	e.running = true

	go e.run(ctx, e.loopDone)
	e.logger.Printf("engine started (interval=%s)", e.tickInterval)
}

// Stop requests loop termination and waits up to stopTimeout for it to exit.
// Stopping a stopped engine is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		e.logger.Printf("stop ignored: engine not running")
		return
	}
	cancel := e.cancel
	done := e.loopDone
	e.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(stopTimeout):
		e.logger.Printf("stop: loop did not exit within %s, marking stopped anyway", stopTimeout)
	}

	e.mu.Lock()
	e.running = false
	e.cancel = nil
	e.mu.Unlock()
	e.logger.Printf("engine stopped")
}

// ResetSteps zeroes the cumulative step counter. Activity level and the
// running state are untouched; the next tick starts counting from zero.
func (e *Engine) ResetSteps() {
	e.mu.Lock()
	e.totalSteps = 0
	e.mu.Unlock()
	totalStepsGauge.Set(0)
	e.logger.Printf("step counter reset")
}

// Status returns a snapshot copy of the engine state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		Running:             e.running,
		ActivityLevel:       e.level,
		TotalSteps:          e.totalSteps,
		BaselineHeartRate:   e.baselineHeartRate,
		TickInterval:        e.tickInterval,
		ReadingsGenerated:   e.readingsGenerated,
		ConsecutiveFailures: e.consecutiveFailures,
		LastError:           e.lastError,
	}
}

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	interval := e.tickInterval
	for {
		if ctx.Err() != nil {
			return
		}

		e.tick(ctx)

		if next := e.effectiveInterval(); next != interval {
			interval = next
			ticker.Reset(interval)
			e.logger.Printf("tick cadence now %s", interval)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick generates one reading and persists it. Persistence failures are
// recorded and absorbed; only Stop ends the loop.
func (e *Engine) tick(ctx context.Context) {
	e.mu.Lock()
	level := e.levels.MaybeTransition()
	if level != e.level {
		e.level = level
		activityTransitions.WithLabelValues(string(level)).Inc()
		e.logger.Printf("activity level changed to %s", level)
	}
	heartRate := generateHeartRate(e.rng, level)
	e.totalSteps += generateStepIncrement(e.rng, level)
	steps := e.totalSteps
	oxygen := generateOxygen(e.rng, level)
	temperature := generateTemperature(e.rng, level)
	e.mu.Unlock()

	reading := domain.Reading{
		ID:               uuid.NewString(),
		HeartRate:        heartRate,
		Steps:            steps,
		OxygenSaturation: oxygen,
		BodyTemperature:  temperature,
		Timestamp:        time.Now().UTC(),
	}

	// A hung store call must not stall shutdown past one interval.
	saveCtx, cancelSave := context.WithTimeout(ctx, e.tickInterval)
	err := e.store.SaveReading(saveCtx, reading)
	cancelSave()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		e.consecutiveFailures++
		e.lastError = err.Error()
		saveFailures.Inc()
		e.logger.Printf("save failed (streak=%d): %v", e.consecutiveFailures, err)
		return
	}

	e.consecutiveFailures = 0
	e.lastError = ""
	e.readingsGenerated++
	readingsGenerated.Inc()
	totalStepsGauge.Set(float64(steps))
}

func (e *Engine) effectiveInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.consecutiveFailures < backoffFailureThreshold {
		return e.tickInterval
	}
	multiplier := 1 << uint(e.consecutiveFailures-backoffFailureThreshold+1)
	if multiplier > backoffMaxMultiplier {
		multiplier = backoffMaxMultiplier
	}
	return time.Duration(multiplier) * e.tickInterval
}
