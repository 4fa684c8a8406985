package client

import (
	"sync"
	"time"
)

// BreakerState represents the state of a circuit breaker
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// BreakerConfig holds configuration for the circuit breaker
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit
	FailureThreshold int
	// SuccessThreshold is the number of successes that closes a half-open circuit
	SuccessThreshold int
	// Cooldown is how long the circuit stays open before probing again
	Cooldown time.Duration
	// OnStateChange is called after every transition
	OnStateChange func(from, to BreakerState)
}

// Breaker trips after repeated remote failures so that callers fall back
// immediately instead of waiting on a dead backend.
type Breaker struct {
	mu        sync.Mutex
	config    BreakerConfig
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time
	now       func() time.Time
}

// NewBreaker creates a closed breaker, filling in defaults
func NewBreaker(config BreakerConfig) *Breaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 2
	}
	if config.Cooldown <= 0 {
		config.Cooldown = 30 * time.Second
	}
	return &Breaker{config: config, state: StateClosed, now: time.Now}
}

// Allow reports whether a call may go out. An open breaker turns half-open
// once the cooldown has elapsed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.config.Cooldown {
			return false
		}
		b.setState(StateHalfOpen)
		return true
	default:
		return true
	}
}

// Success records a healthy response
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.setState(StateClosed)
		}
	}
}

// Failure records a transport error or server-side failure
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateHalfOpen:
		b.setState(StateOpen)
	case StateClosed:
		b.failures++
		if b.failures >= b.config.FailureThreshold {
			b.setState(StateOpen)
		}
	}
}

// State returns the current state
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// setState must be called with mu held
func (b *Breaker) setState(to BreakerState) {
	from := b.state
	if from == to {
		return
	}

	b.state = to
	b.failures = 0
	b.successes = 0
	if to == StateOpen {
		b.openedAt = b.now()
	}

	if b.config.OnStateChange != nil {
		b.config.OnStateChange(from, to)
	}
}
