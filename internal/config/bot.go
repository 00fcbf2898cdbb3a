package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type BotConfig struct {
	Token string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	// OwnerID restricts the bot to a single user. Zero serves everyone.
	OwnerID int64 `env:"TELEGRAM_OWNER_ID" envDefault:"0"`
}

func NewBotConfig() (*BotConfig, error) {
	return parseBotConfig(env.Options{})
}

func parseBotConfig(opts env.Options) (*BotConfig, error) {
	c := &BotConfig{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("invalid bot config: %w", err)
	}
	return c, nil
}
