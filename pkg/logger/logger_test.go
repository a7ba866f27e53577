package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alimgiray/inbox/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLevel(t *testing.T) {
	require.NoError(t, Configure(config.LogConfig{Level: "debug"}))
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())

	require.NoError(t, Configure(config.LogConfig{Level: "bogus"}))
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
}

func TestConfigureWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "inbox.log")

	require.NoError(t, Configure(config.LogConfig{Level: "info", File: path}))
	t.Cleanup(Init)

	WithField("email_id", 7).Info("email created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"email_id":7`)
	assert.Contains(t, string(data), `"msg":"email created"`)
}
