package main

import (
	"github.com/spf13/cobra"

	"github.com/sandevgo/tgsearch/internal/config"
	"github.com/sandevgo/tgsearch/internal/service/installer"
	"github.com/sandevgo/tgsearch/pkg/log"
)

var configureCmd = &cobra.Command{
	Use:          "configure",
	Short:        "Write credentials and the target group to the runtime .env",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)
		envPath := config.GetEnvFilePath()

		state, err := installer.RunWizard(envPath)
		if err != nil {
			return err
		}

		logger.Info().Str("path", envPath).Msg("configuration saved")
		if state.WithBot {
			logger.Info().Msg("run 'tgsearch serve' to start the bot")
		} else {
			logger.Info().Msg("run 'tgsearch <query>' to search")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
