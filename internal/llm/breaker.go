package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures BreakerClient
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32        // probes allowed while half-open
	Interval         time.Duration // closed-state count reset period
	Timeout          time.Duration // open-state duration before probing
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings trips after half of at least 3 calls fail
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "llm-extraction",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.5,
	}
}

// BreakerClient stops calling a failing model for a while so batch runs do
// not wait out a timeout per document.
type BreakerClient struct {
	Client
	cb *gobreaker.CircuitBreaker[string]
}

// NewBreakerClient wraps inner with a circuit breaker
func NewBreakerClient(inner Client, s BreakerSettings, logger *slog.Logger) *BreakerClient {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= s.MinRequests && failureRatio >= s.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	}
	return &BreakerClient{
		Client: inner,
		cb:     gobreaker.NewCircuitBreaker[string](settings),
	}
}

// ExtractJSON calls the wrapped client unless the breaker is open
func (b *BreakerClient) ExtractJSON(ctx context.Context, req Request) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.Client.ExtractJSON(ctx, req)
	})
}

// State reports the breaker state
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}
