package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc is invoked outside the breaker lock after a transition.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker guards the upstream backend. It never retries; it only
// refuses calls while the dependency is considered down.
type CircuitBreaker struct {
	name          string
	cfg           CircuitBreakerConfig
	onStateChange StateChangeFunc
	now           func() time.Time

	mu       sync.Mutex
	state    CircuitState
	openedAt time.Time
	tally    breakerTally
}

// breakerTally is reset on every state change.
type breakerTally struct {
	failures       int
	probes         int
	probeSuccesses int
}

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig, onStateChange StateChangeFunc) *CircuitBreaker {
	return &CircuitBreaker{
		name:          name,
		cfg:           cfg.Normalize(),
		onStateChange: onStateChange,
		now:           time.Now,
		state:         CircuitStateClosed,
	}
}

func (b *CircuitBreaker) Name() string {
	return b.name
}

// Execute runs fn when the breaker admits the call. isFailure decides which
// errors count against the dependency; a nil isFailure counts every error.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn(ctx)
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

// Allow admits a call or returns ErrCircuitOpen. An open breaker whose
// timeout has passed moves to half-open and admits up to HalfOpenMaxReq
// probes.
func (b *CircuitBreaker) Allow() error {
	return b.update(func(now time.Time) error {
		if b.state == CircuitStateOpen {
			if !b.cooledDown(now) {
				return ErrCircuitOpen
			}
			b.moveTo(CircuitStateHalfOpen, now)
		}
		if b.state == CircuitStateHalfOpen {
			if b.tally.probes >= b.cfg.HalfOpenMaxReq {
				return ErrCircuitOpen
			}
			b.tally.probes++
		}
		return nil
	})
}

func (b *CircuitBreaker) RecordSuccess() {
	_ = b.update(func(now time.Time) error {
		switch b.state {
		case CircuitStateClosed:
			b.tally.failures = 0
		case CircuitStateHalfOpen:
			b.tally.probes = max(b.tally.probes-1, 0)
			b.tally.probeSuccesses++
			if b.tally.probeSuccesses >= b.cfg.HalfOpenMaxReq && b.tally.probes == 0 {
				b.moveTo(CircuitStateClosed, now)
			}
		}
		return nil
	})
}

func (b *CircuitBreaker) RecordFailure() {
	_ = b.update(func(now time.Time) error {
		switch b.state {
		case CircuitStateClosed:
			b.tally.failures++
			if b.tally.failures >= b.cfg.FailureThreshold {
				b.moveTo(CircuitStateOpen, now)
			}
		case CircuitStateHalfOpen:
			b.moveTo(CircuitStateOpen, now)
		case CircuitStateOpen:
			b.openedAt = now
		}
		return nil
	})
}

// State reports an open breaker whose timeout has passed as half-open, even
// before the next call moves it there.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooledDown(b.now()) {
		return CircuitStateHalfOpen
	}
	return b.state
}

// update runs fn under the lock and reports a state change after unlocking.
func (b *CircuitBreaker) update(fn func(now time.Time) error) error {
	b.mu.Lock()
	from := b.state
	err := fn(b.now())
	to := b.state
	b.mu.Unlock()

	if from != to && b.onStateChange != nil {
		b.onStateChange(from, to)
	}
	return err
}

func (b *CircuitBreaker) cooledDown(now time.Time) bool {
	return now.Sub(b.openedAt) >= b.cfg.OpenTimeout
}

func (b *CircuitBreaker) moveTo(state CircuitState, now time.Time) {
	b.state = state
	b.tally = breakerTally{}
	b.openedAt = time.Time{}
	if state == CircuitStateOpen {
		b.openedAt = now
	}
}
