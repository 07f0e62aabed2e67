package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfo(t *testing.T) {
	log := New(Config{Level: "bogus"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewParsesLevel(t *testing.T) {
	log := New(Config{Level: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "agent.log")

	log := New(Config{Level: "info", File: path})
	log.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
