package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgtClickClack/DojoPool-sub003/internal/logging"
)

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dojopool.log")

	res := logging.New(logging.Config{
		Level:  "debug",
		Format: "json",
		Output: "file",
		File:   path,
	})
	defer res.Close()

	require.True(t, res.UsingFile)
	assert.Equal(t, path, res.FilePath)
	assert.Empty(t, res.FallbackReason)

	res.Logger.Info().Str("screen", "tournaments").Msg("opened")
	require.NoError(t, res.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "opened", entry["message"])
	assert.Equal(t, "tournaments", entry["screen"])
}

func TestNewFileFallback(t *testing.T) {
	// Parent path is a regular file, so the log directory cannot be created.
	parent := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	res := logging.New(logging.Config{
		Output: "file",
		File:   filepath.Join(parent, "nested", "dojopool.log"),
	})
	defer res.Close()

	assert.False(t, res.UsingFile)
	assert.NotEmpty(t, res.FallbackReason)
}

func TestNewDefaultsLevel(t *testing.T) {
	res := logging.New(logging.Config{Level: "chatty"})
	defer res.Close()

	assert.Equal(t, "info", res.Logger.GetLevel().String())
}

func TestComponentLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dojopool.log")
	res := logging.New(logging.Config{Format: "json", Output: "file", File: path})

	cli := logging.ComponentLogger(res.Logger, "cli")
	cli.Info().Msg("ready")
	require.NoError(t, res.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"cli"`)
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	id := logging.NewTraceID()
	require.Len(t, id, 26)

	ctx = logging.ContextWithTraceID(ctx, id)
	assert.Equal(t, id, logging.TraceIDFromContext(ctx))
	assert.Equal(t, id, logging.GetOrGenerateTraceID(ctx))

	minted := logging.GetOrGenerateTraceID(context.Background())
	assert.Len(t, minted, 26)
	assert.NotEqual(t, id, minted)
}

func TestTraceHookTagsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dojopool.log")
	res := logging.New(logging.Config{Format: "json", Output: "file", File: path})

	ctx := logging.ContextWithTraceID(context.Background(), "01JTRACEULID00000000000000")
	res.Logger.Warn().Ctx(ctx).Msg("slow gateway")
	require.NoError(t, res.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"trace_id":"01JTRACEULID00000000000000"`)
}

func TestFromContext(t *testing.T) {
	res := logging.New(logging.Config{})
	defer res.Close()

	ctx := logging.WithContext(context.Background(), res.Logger)
	got := logging.FromContext(ctx)
	assert.Equal(t, res.Logger.GetLevel(), got.GetLevel())

	// Level methods chain straight off the returned logger.
	assert.NotPanics(t, func() {
		logging.FromContext(ctx).Error().Ctx(ctx).Msg("ignored")
	})

	// Without a stored logger the result is disabled, not nil.
	fallback := logging.FromContext(context.Background())
	assert.NotNil(t, fallback)
	assert.NotPanics(t, func() { fallback.Info().Msg("ignored") })
}

func TestPrintHelpers(t *testing.T) {
	var sb strings.Builder
	logging.PrintLogPathMessage(&sb, "/tmp/dojopool.log")
	assert.Equal(t, "Logs: /tmp/dojopool.log\n", sb.String())

	sb.Reset()
	logging.PrintFallbackWarning(&sb, "open log file: permission denied")
	assert.Contains(t, sb.String(), "stderr")
	assert.Contains(t, sb.String(), "permission denied")
}
