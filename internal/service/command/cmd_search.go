package command

import (
	"context"
	"strings"
	"sync"

	"github.com/sandevgo/tgsearch/internal/core"
	"github.com/sandevgo/tgsearch/pkg/log"
)

type SearchCommand struct {
	searcher  core.Searcher
	formatter *ResponseFormatter
	// one session file cannot serve two connections at once
	mu sync.Mutex
}

func NewSearchCommand(searcher core.Searcher) *SearchCommand {
	return &SearchCommand{
		searcher:  searcher,
		formatter: NewResponseFormatter(),
	}
}

func (c *SearchCommand) Name() string {
	return "search"
}

func (c *SearchCommand) Description() string {
	return "Search recent group messages"
}

func (c *SearchCommand) Execute(ctx context.Context, chatID int64, args []string) (string, error) {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return c.formatter.Combine(
			c.formatter.Info("Search"),
			c.formatter.Usage("/search <keyword>"),
		), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	logger := log.FromCtx(ctx).With().Int64("chat_id", chatID).Logger()
	logger.Info().Str("query", query).Msg("searching group")

	records, err := c.searcher.Search(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("search failed")
		return c.formatter.Error(err), nil
	}

	logger.Info().Int("matches", len(records)).Msg("search finished")
	return c.formatter.Results(query, records), nil
}
