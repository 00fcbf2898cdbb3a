package config

// EnvFile is the set of variables written by the setup wizard.
type EnvFile struct {
	APIID        string `env:"API_ID"`
	APIHash      string `env:"API_HASH"`
	Group        string `env:"GROUP"`
	SessionFile  string `env:"SESSION_FILE"`
	BotToken     string `env:"TELEGRAM_TOKEN"`
	BotOwnerID   string `env:"TELEGRAM_OWNER_ID"`
	DebugEnabled string `env:"TGSEARCH_DEBUG"`
}
