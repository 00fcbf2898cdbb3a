package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/tgsearch/pkg/conv"
	"github.com/sandevgo/tgsearch/pkg/log"
	"github.com/sandevgo/tgsearch/pkg/retry"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot     *tele.Bot
	retrier *retry.Retrier
}

func newSender(bot *tele.Bot) *sender {
	return &sender{
		bot:     bot,
		retrier: retry.NewDefaultRetrier(
			retry.WithRetryAfter(floodWait),
			retry.WithRetryable(retryable),
		),
	}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	for i, chunk := range splitHTML(html, maxTelegramMsgLen) {
		err := s.retrier.Do(ctx, func(ctx context.Context) error {
			_, err := s.bot.Send(to, chunk, tele.ModeHTML, tele.NoPreview)
			return err
		})
		if err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return errors.Wrapf(err, "send chunk %d", i)
		}
	}
	return nil
}

// floodWait extracts the server supplied delay from a 429 response.
func floodWait(err error) (time.Duration, bool) {
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return time.Duration(flood.RetryAfter) * time.Second, true
	}
	var floodPtr *tele.FloodError
	if errors.As(err, &floodPtr) && floodPtr != nil {
		return time.Duration(floodPtr.RetryAfter) * time.Second, true
	}
	return 0, false
}

// retryable rejects API errors other than flood control. Network errors are retried.
func retryable(err error) bool {
	if _, ok := floodWait(err); ok {
		return true
	}
	var apiErr *tele.Error
	return !errors.As(err, &apiErr)
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
