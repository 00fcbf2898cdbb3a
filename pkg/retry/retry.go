package retry

import (
	"context"
	"math/rand"
	"time"
)

type Operation = func(ctx context.Context) error

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    3,
		BackoffFactor: 2,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		Jitter:        100 * time.Millisecond,
	}
}

type Option func(*Retrier)

// WithRetryAfter lets the server dictate the next delay, e.g. on flood limits.
// A hinted delay replaces the backoff step but still honors MaxDelay.
func WithRetryAfter(fn func(error) (time.Duration, bool)) Option {
	return func(r *Retrier) { r.retryAfter = fn }
}

// WithRetryable stops retrying as soon as fn reports an error as permanent.
func WithRetryable(fn func(error) bool) Option {
	return func(r *Retrier) { r.retryable = fn }
}

type Retrier struct {
	config     *Config
	retryAfter func(error) (time.Duration, bool)
	retryable  func(error) bool
}

func NewRetrier(config *Config, opts ...Option) *Retrier {
	r := &Retrier{config: config}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewDefaultRetrier(opts ...Option) *Retrier {
	return NewRetrier(NewDefaultConfig(), opts...)
}

func (r *Retrier) Do(ctx context.Context, op Operation) error {
	var err error
	delay := r.config.InitialDelay
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}

		if attempt == r.config.MaxRetries {
			return err
		}
		if r.retryable != nil && !r.retryable(err) {
			return err
		}

		wait := delay
		if r.retryAfter != nil {
			if hint, ok := r.retryAfter(err); ok {
				wait = hint
			}
		}
		if wait > r.config.MaxDelay {
			wait = r.config.MaxDelay
		}
		if r.config.Jitter > 0 {
			wait += time.Duration(rnd.Float64() * float64(r.config.Jitter))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * r.config.BackoffFactor)
		if delay > r.config.MaxDelay {
			delay = r.config.MaxDelay
		}
	}
	return err
}
