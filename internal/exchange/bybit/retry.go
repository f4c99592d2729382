package bybit

import (
	"context"
	"math"
	"time"
)

// RetryConfig holds configuration for retry mechanisms
type RetryConfig struct {
	MaxRetries    int           `json:"maxRetries"`
	InitialDelay  time.Duration `json:"initialDelay"`
	MaxDelay      time.Duration `json:"maxDelay"`
	BackoffFactor float64       `json:"backoffFactor"`
	JitterEnabled bool          `json:"jitterEnabled"`
}

// DefaultRetryConfig returns a default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// RetryableFunc represents a function that can be retried
type RetryableFunc func() error

// Retry executes a function with retry logic
func (c *Client) Retry(ctx context.Context, fn RetryableFunc) error {
	return c.RetryWithConfig(ctx, fn, DefaultRetryConfig())
}

// RetryWithConfig executes a function with custom retry configuration
func (c *Client) RetryWithConfig(ctx context.Context, fn RetryableFunc, config RetryConfig) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == config.MaxRetries {
			break
		}

		if !IsRetryableError(err) {
			break
		}

		delay := calculateDelay(attempt, config)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return WrapAPIError("retry exhausted", lastErr)
}

// calculateDelay calculates the delay for a retry attempt with exponential backoff
func calculateDelay(attempt int, config RetryConfig) time.Duration {
	delay := config.InitialDelay

	if attempt > 0 {
		delay = time.Duration(float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt)))
	}

	if delay > config.MaxDelay {
		delay = config.MaxDelay
	}

	if config.JitterEnabled {
		jitter := time.Duration(float64(delay) * 0.1 * (2*randFloat() - 1))
		delay += jitter
	}

	return delay
}

// randFloat returns a pseudo-random float between 0 and 1
func randFloat() float64 {
	return float64(time.Now().UnixNano()%1000) / 1000.0
}
