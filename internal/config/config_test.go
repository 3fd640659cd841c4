package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COSTTRACK_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "megacost_v2", cfg.Store.Namespace)
	require.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	require.Equal(t, "@every 1h", cfg.Jobs.Schedule)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
transport:
  mode: stdio
ai:
  model: gemini-2.0-flash
  timeout: 10s
store:
  namespace: from_file
`), 0o644))

	t.Setenv("COSTTRACK_CONFIG_PATH", path)
	t.Setenv("COSTTRACK_STORE_NAMESPACE", "from_env")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	require.Equal(t, 10*time.Second, cfg.AI.Timeout)
	require.Equal(t, "from_env", cfg.Store.Namespace)
	require.Equal(t, "secret", cfg.AI.APIKey)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("COSTTRACK_CONFIG_PATH", "")
	// registered so t restores the variable godotenv sets
	t.Setenv("COSTTRACK_EXPORT_DIR", "")
	os.Unsetenv("COSTTRACK_EXPORT_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COSTTRACK_EXPORT_DIR=/tmp/reports\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/reports", cfg.Export.Dir)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COSTTRACK_CONFIG_PATH", "")

	t.Setenv("COSTTRACK_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("COSTTRACK_SERVER_PORT", "8080")
	t.Setenv("COSTTRACK_TRANSPORT", "carrier-pigeon")
	_, err = Load()
	require.Error(t, err)
}
