package clients

import (
	"time"

	"github.com/sony/gobreaker"

	applog "bookbarn/internal/log"
)

// newBreaker builds the circuit breaker shared by both collaborator clients.
// Trips after 60% failures across at least 3 calls; half-opens after 30s.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && ratio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			applog.Warn(nil, "breaker.state", map[string]any{
				"circuit": name, "from": from.String(), "to": to.String(),
			})
		},
	})
}
