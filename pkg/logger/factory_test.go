package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portalguard/pkg/environment"
	"github.com/dmitrymomot/portalguard/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")

		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("includes static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")

		assert.Equal(t, "test", decode(t, buf)["svc"])
	})

	t.Run("extracts from context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type key string
		ctxKey := key("id")
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				if v, ok := ctx.Value(ctxKey).(string); ok {
					return slog.String("id", v), true
				}
				return slog.Attr{}, false
			}),
		)
		log.With("component", "guard").InfoContext(context.WithValue(context.Background(), ctxKey, "42"), "msg")

		entry := decode(t, buf)
		assert.Equal(t, "42", entry["id"])
		assert.Equal(t, "guard", entry["component"])
	})
}

func TestWithLevelName(t *testing.T) {
	tests := []struct {
		name      string
		debugSeen bool
		warnSeen  bool
	}{
		{"debug", true, true},
		{"DEBUG", true, true},
		{"warn", false, true},
		{"error", false, false},
		{"", false, true},
		{"verbose", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithLevelName(tt.name))

			log.Debug("d")
			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte(`"msg":"d"`)))
			log.Warn("w")
			assert.Equal(t, tt.warnSeen, bytes.Contains(buf.Bytes(), []byte(`"msg":"w"`)))
		})
	}
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(environment.Development, "portal"))
		log.Debug("msg")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=portal")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(environment.Production, "portal"))
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("msg")
		entry := decode(t, buf)
		assert.Equal(t, "portal", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("level option after environment wins", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithEnvironment(environment.Production, "portal"),
			logger.WithLevelName("debug"),
		)
		log.Debug("msg")
		assert.Equal(t, "DEBUG", decode(t, buf)["level"])
	})
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")

	assert.Equal(t, "default", decode(t, buf)["msg"])
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}
