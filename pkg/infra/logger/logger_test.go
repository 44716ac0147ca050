package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestParseLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, logrus.InfoLevel, parseLevel(""))

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, logrus.ErrorLevel, parseLevel(""))
}

func TestLogPath_StaysInLogsDir(t *testing.T) {
	path, err := logPath("safechat.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("logs", "safechat.log"), path)

	_, err = logPath("../etc/passwd")
	assert.Error(t, err)
}

func TestAsyncConsoleHook_FlushesOnClose(t *testing.T) {
	out := &syncBuffer{}
	hook := NewAsyncConsoleHook(out, 16)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(hook)

	logger.WithField("conversation_id", "c1").Info("crisis flag recorded")
	hook.Close()
	hook.Close()

	assert.Contains(t, out.String(), `"conversation_id":"c1"`)
}

func TestAsyncFileWriter_WritesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := NewAsyncFileWriter(path, 1024)
	require.NoError(t, err)

	_, err = w.Write([]byte("line one\n"))
	require.NoError(t, err)
	w.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\n", string(data))
}
