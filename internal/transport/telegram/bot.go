package telegram

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/tgsearch/internal/config"
	"github.com/sandevgo/tgsearch/internal/core"
	"github.com/sandevgo/tgsearch/pkg/log"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	router  core.CmdRouter
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.BotConfig,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.FromCtx(ctx).Error().Err(err).Msg("telegram handler failed")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, errors.Wrap(err, "create telegram bot")
	}

	bot := &Bot{
		bot:     b,
		router:  router,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !bot.allowed(c.Sender()) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

// allowed reports whether the sender may use the bot. Zero owner means anyone.
func (b *Bot) allowed(u *tele.User) bool {
	if b.ownerID == 0 {
		return true
	}
	return u != nil && u.ID == b.ownerID
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	reply, ok := b.router.Execute(ctx, c.Chat().ID, c.Text())
	if !ok || reply == "" {
		return nil
	}

	if err := b.sender.sendMarkdown(ctx, c.Chat(), reply); err != nil {
		logger.Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to send reply")
		return err
	}
	return nil
}
