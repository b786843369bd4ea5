package providers

import "time"

// RateLimiter implements simple token-bucket rate limiting for outbound
// API calls.
type RateLimiter struct {
	requests int
	window   time.Duration
	tokens   chan struct{}
}

// NewRateLimiter creates a rate limiter allowing requests per window.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: requests,
		window:   window,
		tokens:   make(chan struct{}, requests),
	}

	// Fill the bucket initially
	for i := 0; i < requests; i++ {
		rl.tokens <- struct{}{}
	}

	go rl.refill()

	return rl
}

// Allow checks if a request is allowed under the rate limit.
func (rl *RateLimiter) Allow() bool {
	select {
	case <-rl.tokens:
		return true
	default:
		return false
	}
}

// refill replenishes the token bucket.
func (rl *RateLimiter) refill() {
	ticker := time.NewTicker(rl.window / time.Duration(rl.requests))
	defer ticker.Stop()

	for range ticker.C {
		select {
		case rl.tokens <- struct{}{}:
		default:
		}
	}
}
