package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const DefaultSessionFile = "/app/session.session"

// SearchConfig holds everything a single search needs.
type SearchConfig struct {
	APIID       int    `env:"API_ID,required"`
	APIHash     string `env:"API_HASH,required,notEmpty"`
	Group       string `env:"GROUP,required,notEmpty"`
	SessionFile string `env:"SESSION_FILE" envDefault:"/app/session.session"`
}

func NewSearchConfig() (*SearchConfig, error) {
	return parseSearchConfig(env.Options{})
}

func parseSearchConfig(opts env.Options) (*SearchConfig, error) {
	c := &SearchConfig{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}
	return c, nil
}

func (c *SearchConfig) Validate() error {
	var errs []error
	if c.APIID <= 0 {
		errs = append(errs, fmt.Errorf("API_ID must be a positive integer, got %d", c.APIID))
	}
	if c.SessionFile == "" {
		errs = append(errs, errors.New("SESSION_FILE must not be empty"))
	}
	return errors.Join(errs...)
}
