package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", "json")
	t.Cleanup(func() { InitWithWriter(&bytes.Buffer{}, "info", "json") })

	ctx := WithFields(context.Background(), map[string]any{"request_id": "req-1"})
	FromContext(ctx).Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "info", line["level"])
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", "json")
	t.Cleanup(func() { InitWithWriter(&bytes.Buffer{}, "info", "json") })

	l := FromContext(context.Background())
	assert.Same(t, &log.Logger, l)
	l.Info().Msg("global")
	assert.Contains(t, buf.String(), "global")
}

func TestInitIgnoresUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "loud", "json")
	t.Cleanup(func() { InitWithWriter(&bytes.Buffer{}, "info", "json") })

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
