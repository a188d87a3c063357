package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"HTTP_ADDRESS", "DB_DRIVER", "DB_CONN", "HTTP_READ_TIMEOUT", "GEMINI_API_KEY", "GEMINI_MODEL", "MCP_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddress)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "./fittrack.db", cfg.DBConn)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.True(t, cfg.MCPEnabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_CONN", "postgres://localhost/fit")
	t.Setenv("HTTP_READ_TIMEOUT", "2s")
	t.Setenv("MCP_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddress)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/fit", cfg.DBConn)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
	assert.False(t, cfg.MCPEnabled)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_WRITE_TIMEOUT", "soon")
	t.Setenv("MCP_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.True(t, cfg.MCPEnabled)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FITTRACK_TEST_KEY=from-file\nFITTRACK_TEST_SET=from-file\n"), 0600))

	t.Setenv("FITTRACK_TEST_SET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("FITTRACK_TEST_KEY") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("FITTRACK_TEST_KEY"))
	assert.Equal(t, "from-env", os.Getenv("FITTRACK_TEST_SET"))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
