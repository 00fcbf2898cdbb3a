package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/tgsearch/internal/core"
	"github.com/sandevgo/tgsearch/pkg/log"
)

// Scan resolves group, examines its most recent messages and collects up to
// core.MaxResults matches, most recent first. The result is never nil.
func Scan(ctx context.Context, src core.MessageSource, group, query string) ([]core.MatchRecord, error) {
	logger := log.FromCtx(ctx)
	query = NormalizeQuery(query)

	entity, err := src.ResolveEntity(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group %q: %w", group, err)
	}

	messages, err := src.RecentMessages(ctx, group, core.ScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	if len(messages) > core.ScanLimit {
		messages = messages[:core.ScanLimit]
	}

	results := make([]core.MatchRecord, 0, core.MaxResults)
	scanned := 0
	for _, msg := range messages {
		scanned++
		if Matches(msg.Text, query) {
			results = append(results, core.MatchRecord{
				Date: FormatDate(msg.Date),
				Link: Permalink(entity, msg.ID),
			})
		}
		if len(results) >= core.MaxResults {
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date > results[j].Date
	})

	logger.Debug().
		Str("query", query).
		Int("scanned", scanned).
		Int("matches", len(results)).
		Msg("search finished")

	return results, nil
}

// SessionOpener opens a scoped messaging session and releases it when fn returns.
type SessionOpener interface {
	Session(ctx context.Context, fn func(ctx context.Context, src core.MessageSource) error) error
}

// Searcher runs every search in its own session against a fixed group.
type Searcher struct {
	opener SessionOpener
	group  string
}

func NewSearcher(opener SessionOpener, group string) *Searcher {
	return &Searcher{opener: opener, group: group}
}

func (s *Searcher) Search(ctx context.Context, query string) ([]core.MatchRecord, error) {
	var results []core.MatchRecord
	err := s.opener.Session(ctx, func(ctx context.Context, src core.MessageSource) error {
		var err error
		results, err = Scan(ctx, src, s.group, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
