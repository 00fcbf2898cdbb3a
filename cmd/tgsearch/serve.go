package main

import (
	"github.com/spf13/cobra"

	"github.com/sandevgo/tgsearch/pkg/log"
	"github.com/sandevgo/tgsearch/pkg/srv"
)

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Answer searches from a Telegram bot",
	Long:         `Starts a Telegram bot that runs a search for every text message it receives.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)

		services, err := NewServices(ctx)
		if err != nil {
			return err
		}

		logger.Info().Msg("starting tgsearch bot")
		if err := srv.Run(ctx, services...); err != nil {
			return err
		}
		logger.Info().Msg("tgsearch has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
