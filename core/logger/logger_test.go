package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with app name and static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithAppName("itihas"),
			logger.WithAttr(slog.String("env", "test")),
		)

		log.Info("hello", logger.Endpoint("composite"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "itihas", record["app"])
		assert.Equal(t, "test", record["env"])
		assert.Equal(t, "composite", record["endpoint"])
	})

	t.Run("level string filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithLevelString("warn"), logger.WithOutput(&buf))

		log.Info("hidden")
		assert.Empty(t, buf.String())

		log.Warn("visible")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithLevelString("verbose"), logger.WithOutput(&buf))

		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("visible")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("nil error produces an empty attr", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
		log.Info("msg", logger.Error(nil))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.NotContains(t, record, "error")
	})

	t.Run("error attr carries the message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
		log.Warn("msg", logger.Error(errors.New("upstream down")))

		assert.Contains(t, buf.String(), "upstream down")
	})

	t.Run("empty request id is omitted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
		log.Info("msg", logger.RequestID(""))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.NotContains(t, record, "request_id")
	})
}
