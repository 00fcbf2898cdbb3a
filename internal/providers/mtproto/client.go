package mtproto

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"

	"github.com/sandevgo/tgsearch/internal/config"
	"github.com/sandevgo/tgsearch/internal/core"
	"github.com/sandevgo/tgsearch/pkg/log"
)

// Client opens authenticated MTProto sessions from a pre-existing session file.
type Client struct {
	apiID   int
	apiHash string
	storage session.Storage
}

func NewClient(ctx context.Context, cfg *config.SearchConfig) (*Client, error) {
	storage, err := OpenSession(ctx, cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	return &Client{
		apiID:   cfg.APIID,
		apiHash: cfg.APIHash,
		storage: storage,
	}, nil
}

// Session connects, checks that the stored login is still valid and runs fn.
// The connection is closed when fn returns, whatever the outcome.
func (c *Client) Session(ctx context.Context, fn func(ctx context.Context, src core.MessageSource) error) error {
	logger := log.FromCtx(ctx)

	client := telegram.NewClient(c.apiID, c.apiHash, telegram.Options{
		SessionStorage: c.storage,
		NoUpdates:      true,
	})

	err := client.Run(ctx, func(ctx context.Context) error {
		status, err := client.Auth().Status(ctx)
		if err != nil {
			return errors.Wrap(err, "auth status")
		}
		if !status.Authorized {
			return core.ErrUnauthorized
		}
		logger.Debug().Msg("session authorized")

		return fn(ctx, newSource(client.API()))
	})
	logger.Debug().Err(err).Msg("session closed")
	return err
}
