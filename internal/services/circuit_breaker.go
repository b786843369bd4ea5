package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// CircuitBreakerService wraps external data-fetch calls so a failing
// upstream endpoint stops being hammered. One breaker per endpoint kind.
type CircuitBreakerService struct {
	breakers map[string]*gobreaker.CircuitBreaker
	logger   *logrus.Logger
}

// Endpoint kinds with dedicated breakers.
var breakerNames = []string{
	"depth_chart",
	"recent_usage",
	"news_flags",
	"matchup_metrics",
	"weather",
}

// NewCircuitBreakerService creates breakers for every upstream endpoint.
func NewCircuitBreakerService(threshold int, timeout time.Duration, logger *logrus.Logger) *CircuitBreakerService {
	breakers := make(map[string]*gobreaker.CircuitBreaker, len(breakerNames))
	for _, name := range breakerNames {
		settings := gobreaker.Settings{
			Name:        name,
			MaxRequests: uint32(threshold),
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"component": "circuit_breaker",
					"endpoint":  name,
					"from":      from.String(),
					"to":        to.String(),
				}).Info("Circuit breaker state changed")
			},
		}
		breakers[name] = gobreaker.NewCircuitBreaker(settings)
	}

	return &CircuitBreakerService{
		breakers: breakers,
		logger:   logger,
	}
}

// Execute wraps a fetch with circuit breaker protection.
func (cb *CircuitBreakerService) Execute(endpoint string, fn func() (interface{}, error)) (interface{}, error) {
	breaker, exists := cb.breakers[endpoint]
	if !exists {
		cb.logger.WithFields(logrus.Fields{
			"component": "circuit_breaker",
			"endpoint":  endpoint,
		}).Warn("No circuit breaker found for endpoint, executing without protection")
		return fn()
	}

	return breaker.Execute(fn)
}

// GetState returns the current state of an endpoint's breaker.
func (cb *CircuitBreakerService) GetState(endpoint string) gobreaker.State {
	if breaker, exists := cb.breakers[endpoint]; exists {
		return breaker.State()
	}
	return gobreaker.StateClosed
}
