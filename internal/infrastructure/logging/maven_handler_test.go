package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/eshaffer321/giftpool/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewMavenHandler(buf, &slog.HandlerOptions{Level: level}))
}

func TestMavenHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo).With("system", "engine")

	logger.Info("allocated contributions", "contributors", 3, "gift_price", decimal.RequireFromString("120.50"))

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "[INFO] [engine] ["), line)
	assert.Contains(t, line, " allocated contributions contributors=3 gift_price=120.5\n")
	assert.NotContains(t, line, "system=")
	assert.NotContains(t, line, "\033[", "no colors when not writing to a terminal")
}

func TestMavenHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Warn("shown")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "[WARN]")
}

func TestMavenHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)

	logger.WithGroup("request").With("id", "abc").Info("handled", "status", 200)
	logger.Info("nested", slog.Group("fees", slog.String("platform", "5")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "request.id=abc request.status=200")
	assert.Contains(t, lines[1], "fees.platform=5")
}

func TestMavenHandler_QuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)

	logger.Error("rejected", "reason", "missing funds", "error", errors.New("invalid input: negative"))

	assert.Contains(t, buf.String(), `reason="missing funds"`)
	assert.Contains(t, buf.String(), `error="invalid input: negative"`)
}

func TestNewLoggerTo_Formats(t *testing.T) {
	var buf bytes.Buffer

	NewLoggerTo(&buf, config.LoggingConfig{Level: "debug", Format: "json"}).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	NewLoggerTo(&buf, config.LoggingConfig{Format: "text"}).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	NewLoggerTo(&buf, config.LoggingConfig{}).Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "[INFO]"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}
