package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/tgsearch/internal/config"
	"github.com/sandevgo/tgsearch/internal/providers/mtproto"
	"github.com/sandevgo/tgsearch/internal/service/command"
	"github.com/sandevgo/tgsearch/internal/service/search"
	"github.com/sandevgo/tgsearch/internal/transport/telegram"
	"github.com/sandevgo/tgsearch/pkg/log"
	"github.com/sandevgo/tgsearch/pkg/srv"
)

// runSearch performs one search and prints the result. Nothing reaches out
// unless the whole search succeeded.
func runSearch(ctx context.Context, out io.Writer, query string) error {
	searcher, err := newSearcher(ctx)
	if err != nil {
		return err
	}

	records, err := searcher.Search(ctx, query)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := search.WriteJSON(&buf, records); err != nil {
		return err
	}
	_, err = out.Write(buf.Bytes())
	return err
}

func newSearcher(ctx context.Context) (*search.Searcher, error) {
	if err := initEnv(ctx); err != nil {
		return nil, err
	}

	cfg, err := config.NewSearchConfig()
	if err != nil {
		return nil, err
	}

	client, err := mtproto.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return search.NewSearcher(client, cfg.Group), nil
}

func NewServices(ctx context.Context) ([]srv.Service, error) {
	searcher, err := newSearcher(ctx)
	if err != nil {
		return nil, err
	}

	botCfg, err := config.NewBotConfig()
	if err != nil {
		return nil, err
	}

	bot, err := telegram.NewBot(ctx, botCfg, command.NewBotRouter(searcher))
	if err != nil {
		return nil, err
	}
	return []srv.Service{bot}, nil
}

// initEnv loads .env from the working directory, then from the runtime path.
// Variables that are already set are never overridden.
func initEnv(ctx context.Context) error {
	for _, envFile := range []string{".env", config.GetEnvFilePath()} {
		if err := loadEnvFile(ctx, envFile); err != nil {
			return err
		}
	}
	return nil
}

func loadEnvFile(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	abs, _ := filepath.Abs(envFile)
	logger.Debug().Str("path", abs).Msg("loaded .env file")
	return nil
}
