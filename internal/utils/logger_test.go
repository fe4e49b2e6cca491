package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("defaults to stderr at info", func(t *testing.T) {
		logger := NewLogger(LoggerOptions{})
		require.NotNil(t, logger)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "json",
			Output: &buf,
		})
		logger.Info().Msg("resolved")
		assert.Contains(t, buf.String(), `"message":"resolved"`)
	})

	t.Run("pretty format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "pretty",
			Output: &buf,
		})
		logger.Info().Msg("resolved")
		assert.Contains(t, buf.String(), "resolved")
		assert.NotContains(t, buf.String(), `"message"`)
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:   "error",
			Format:  "json",
			Output:  &buf,
			Verbose: true,
		})
		logger.Debug().Msg("debug test")
		assert.Contains(t, buf.String(), "debug test")
	})
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: "debug", Format: "json", Output: &buf})

	logger.WithComponent("fetcher").
		WithStrategy("CDN").
		WithURL("https://cdn.example.com/list.json").
		Info().Msg("fetched")

	out := buf.String()
	assert.Contains(t, out, `"component":"fetcher"`)
	assert.Contains(t, out, `"strategy":"CDN"`)
	assert.Contains(t, out, `"url":"https://cdn.example.com/list.json"`)
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level       string
		debugLogged bool
		infoLogged  bool
		warnLogged  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(LoggerOptions{Level: tt.level, Format: "json", Output: &buf})

			logger.Debug().Msg("debug-msg")
			logger.Info().Msg("info-msg")
			logger.Warn().Msg("warn-msg")

			assert.Equal(t, tt.debugLogged, bytes.Contains(buf.Bytes(), []byte("debug-msg")))
			assert.Equal(t, tt.infoLogged, bytes.Contains(buf.Bytes(), []byte("info-msg")))
			assert.Equal(t, tt.warnLogged, bytes.Contains(buf.Bytes(), []byte("warn-msg")))
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}
