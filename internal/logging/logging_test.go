package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "visioncore.log")
	require.NoError(t, Init("debug", path, false))
	t.Cleanup(func() { require.NoError(t, Init("info", "", true)) })

	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())
	WithField("kernel", "fill").Debugf("launched %d chunks", 4)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "launched 4 chunks")
	assert.Contains(t, string(data), "kernel=fill")
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, Init("loud", "", false))
	t.Cleanup(func() { require.NoError(t, Init("info", "", true)) })
	assert.Equal(t, logrus.InfoLevel, Get().GetLevel())
}

func TestInitClosesPreviousLogFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init("info", filepath.Join(dir, "first.log"), false))
	mu.RLock()
	first := out
	mu.RUnlock()
	require.NotNil(t, first)

	require.NoError(t, Init("info", filepath.Join(dir, "second.log"), false))
	t.Cleanup(func() { require.NoError(t, Init("info", "", true)) })

	_, err := first.WriteString("late\n")
	assert.ErrorIs(t, err, os.ErrClosed)

	Infof("after swap")
	data, err := os.ReadFile(filepath.Join(dir, "second.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "after swap")
}
