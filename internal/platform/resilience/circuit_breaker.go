package resilience

import (
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

// CircuitBreaker trips after a run of consecutive failures and lets a limited
// number of probe calls through once the cooldown elapses.
type CircuitBreaker struct {
	mu sync.Mutex

	maxFailures int
	cooldown    time.Duration
	probeLimit  int

	state     CircuitState
	failures  int
	trippedAt time.Time
	probes    int
	probeWins int
	now       func() time.Time
}

func NewCircuitBreaker(maxFailures int, cooldown time.Duration, probeLimit int) *CircuitBreaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	if cooldown <= 0 {
		cooldown = 15 * time.Second
	}
	if probeLimit < 1 {
		probeLimit = 1
	}

	return &CircuitBreaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		probeLimit:  probeLimit,
		state:       CircuitStateClosed,
		now:         time.Now,
	}
}

// Allow reports whether a call may proceed. An open breaker whose cooldown
// has elapsed starts probing; while probing, at most probeLimit calls are in
// flight at once.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.trippedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		b.beginProbing()
	}

	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.probeLimit {
			return ErrCircuitOpen
		}
		b.probes++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		b.probeWins++
		// Close only once every probe slot has succeeded.
		if b.probeWins >= b.probeLimit && b.probes == 0 {
			b.reset()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.maxFailures {
			b.trip()
		}
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		b.trip()
	case CircuitStateOpen:
		// A failure while open restarts the cooldown window.
		b.trippedAt = b.now()
	}
}

// State returns the effective state; an open breaker past its cooldown
// reports half-open even before the next Allow observes it.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.trippedAt) >= b.cooldown {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) reset() {
	b.state = CircuitStateClosed
	b.failures = 0
	b.probes = 0
	b.probeWins = 0
	b.trippedAt = time.Time{}
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitStateOpen
	b.trippedAt = b.now()
	b.probes = 0
	b.probeWins = 0
}

func (b *CircuitBreaker) beginProbing() {
	b.state = CircuitStateHalfOpen
	b.probes = 0
	b.probeWins = 0
}
