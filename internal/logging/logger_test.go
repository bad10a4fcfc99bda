package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/cookbook/internal/config"
)

// swapLogger points L at a buffer for the duration of the test.
func swapLogger(t *testing.T, formatter clog.Formatter) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L
	L = clog.NewWithOptions(&buf, clog.Options{Level: clog.DebugLevel, Formatter: formatter})
	t.Cleanup(func() { L = prev })
	return &buf
}

func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	buf := swapLogger(t, clog.TextFormatter)

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E"} {
		assert.Contains(t, out, want)
	}
}

func TestWith_AddsFields(t *testing.T) {
	buf := swapLogger(t, clog.JSONFormatter)

	With("room", "lobby").Info("joined")

	out := buf.String()
	assert.Contains(t, out, "room")
	assert.Contains(t, out, "lobby")
	assert.Contains(t, out, "joined")
}

func TestNew_Levels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.log")

	logger, closer, err := New(config.LoggingConfig{Level: "warn", Format: "logfmt", Output: path})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.False(t, strings.Contains(out, "dropped"), "info should be filtered at warn level")
	assert.Contains(t, out, "kept")
}

func TestNew_InvalidSettings(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)

	_, _, err = New(config.LoggingConfig{Format: "xml"})
	assert.Error(t, err)

	_, _, err = New(config.LoggingConfig{Output: filepath.Join(t.TempDir(), "missing", "cookbook.log")})
	assert.Error(t, err)
}
