package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
)

func TestSetLogger(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logging.Logger().Debug("test message", "key", "value")
	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "key=value")
}

func TestSetLoggerNil(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	logging.SetLogger(nil)
	l := logging.Logger()
	require.NotNil(t, l)
	assert.Equal(t, slog.DiscardHandler, l.Handler())
}

func TestForTagsComponent(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	h := logging.NewBufferedLogHandler(nil)
	logging.SetLogger(slog.New(h))

	logging.For("grid").Info("columns detected", "count", 4)
	assert.True(t, h.Contains("columns detected"))
	assert.True(t, h.Contains("component=grid"))
	assert.True(t, h.Contains("count=4"))
}

func TestBufferedLogHandlerLevel(t *testing.T) {
	h := logging.NewBufferedLogHandler(&slog.HandlerOptions{Level: slog.LevelWarn})
	l := slog.New(h)

	l.Info("quiet")
	l.Warn("loud")
	assert.False(t, h.Contains("quiet"))
	assert.True(t, h.Contains("loud"))
}
