package installer

import "github.com/sandevgo/tgsearch/internal/config"

type InstallState struct {
	Env config.EnvFile
	// WithBot is set when the user picks the Telegram bot channel.
	WithBot bool
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
