package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"
)

const maxBodyBytes = 32 << 20

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = gobreaker.ErrOpenState

// BreakerConfig configures a circuit breaker around a downstream service.
type BreakerConfig struct {
	// Name labels metrics and log lines.
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts reset; 0 never resets.
	Interval time.Duration
	// Timeout spent open before probing again.
	Timeout time.Duration
	// FailureRatio that trips the breaker once MinRequests have been seen.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig returns the defaults for the named dependency.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      15 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

var breakerState = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open).",
	},
	[]string{"name"},
)

func init() {
	prometheus.MustRegister(breakerState)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Breaker fetches JSON documents from one downstream service through a
// circuit breaker. Only transport failures and 5xx responses count as
// failures; 4xx responses are returned as *StatusError without tripping it.
type Breaker struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	logger *slog.Logger
	name   string
}

// NewBreaker wraps client with a breaker configured by cfg.
func NewBreaker(client *Client, cfg BreakerConfig, logger *slog.Logger) *Breaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinRequests {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			var se *StatusError
			return err == nil || (errors.As(err, &se) && se.StatusCode < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateValue(to))
		},
	}
	breakerState.WithLabelValues(cfg.Name).Set(0)

	return &Breaker{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[[]byte](settings),
		logger: logger,
		name:   cfg.Name,
	}
}

// Name returns the breaker's dependency name.
func (b *Breaker) Name() string { return b.name }

// State reports the current breaker state.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// GetBody fetches url and returns the body of a 2xx response.
func (b *Breaker) GetBody(ctx context.Context, url string) ([]byte, error) {
	return b.cb.Execute(func() ([]byte, error) {
		resp, err := b.client.Get(ctx, url)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, ParseResponseError(resp, b.name)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read %s response: %w", b.name, err)
		}
		return body, nil
	})
}

// GetJSON fetches url and decodes the 2xx body into dst.
func (b *Breaker) GetJSON(ctx context.Context, url string, dst any) error {
	body, err := b.GetBody(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s response: %w", b.name, err)
	}
	return nil
}
