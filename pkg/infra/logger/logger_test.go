package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncFileWriter_FlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := NewAsyncFileWriter(path, 1024)
	require.NoError(t, err)

	n, err := w.Write([]byte("first line\n"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	_, _ = w.Write([]byte("second line\n"))
	w.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", string(data))
	assert.Zero(t, w.Dropped())
}

func TestAsyncFileWriter_CloseIsIdempotent(t *testing.T) {
	w, err := NewAsyncFileWriter(filepath.Join(t.TempDir(), "idempotent.log"), 64)
	require.NoError(t, err)
	w.Close()
	assert.NotPanics(t, w.Close)
}

func TestConsoleHook_WritesFormattedEntry(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(&bytes.Buffer{})
	l.AddHook(&ConsoleHook{out: &buf})

	l.WithField("bot", "GPTBot").Info("classified")

	assert.Contains(t, buf.String(), `"bot":"GPTBot"`)
	assert.Contains(t, buf.String(), `"msg":"classified"`)
}

func TestLevelFromEnv(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, levelFromEnv("debug"))
	assert.Equal(t, logrus.WarnLevel, levelFromEnv(" warn "))
	assert.Equal(t, logrus.InfoLevel, levelFromEnv(""))
	assert.Equal(t, logrus.InfoLevel, levelFromEnv("verbose"))
}
