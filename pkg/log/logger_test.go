package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewContextWithLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := newContextWithLogger(context.Background(), &buf, false)

	FromCtx(ctx).Debug().Msg("hidden")
	FromCtx(ctx).Info().Str("group", "mygroup").Msg("visible")
	flush()

	out := buf.String()
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "group=mygroup")
	assert.NotContains(t, out, "hidden")
}

func TestNewContextWithLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := newContextWithLogger(context.Background(), &buf, true)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	FromCtx(ctx).Debug().Msg("shown in debug")
	flush()

	assert.Contains(t, buf.String(), "shown in debug")
}

func TestFromCtx_WithoutLogger(t *testing.T) {
	logger := FromCtx(context.Background())
	assert.NotNil(t, logger)
	logger.Info().Msg("does not panic")
}
