//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tgsearch/internal/core"
	"github.com/sandevgo/tgsearch/internal/providers/mtproto"
	"github.com/sandevgo/tgsearch/internal/service/search"
	"github.com/sandevgo/tgsearch/test"
)

func TestSearchLiveGroup(t *testing.T) {
	cfg := test.GetSearchConfig(t)
	ctx := test.Context(t)

	query := os.Getenv("TGSEARCH_TEST_QUERY")
	if query == "" {
		query = "the"
	}

	client, err := mtproto.NewClient(ctx, cfg)
	require.NoError(t, err)

	records, err := search.NewSearcher(client, cfg.Group).Search(ctx, query)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(records), core.MaxResults)

	for i, r := range records {
		assert.True(t, strings.HasPrefix(r.Link, "https://t.me/"), r.Link)
		if i > 0 {
			assert.GreaterOrEqual(t, records[i-1].Date, r.Date)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, search.WriteJSON(&buf, records))
	var decoded []core.MatchRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, records, decoded)
}

func TestResolveLiveGroup(t *testing.T) {
	cfg := test.GetSearchConfig(t)
	ctx := test.Context(t)

	client, err := mtproto.NewClient(ctx, cfg)
	require.NoError(t, err)

	err = client.Session(ctx, func(ctx context.Context, src core.MessageSource) error {
		entity, err := src.ResolveEntity(ctx, cfg.Group)
		if err != nil {
			return err
		}
		assert.NotZero(t, entity.ID)

		msgs, err := src.RecentMessages(ctx, cfg.Group, core.ScanLimit)
		if err != nil {
			return err
		}
		assert.LessOrEqual(t, len(msgs), core.ScanLimit)
		return nil
	})
	require.NoError(t, err)
}
