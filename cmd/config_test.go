package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"procurement/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig("", noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "83", cfg.Currency.Rate)
	assert.Equal(t, "0 */5 * * * *", cfg.Jobs.BacklogReportSpec)

	converter, err := cfg.Converter()
	require.NoError(t, err)
	assert.Equal(t, "83", converter.Rate().String())
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: "9090"
  write_timeout: 5s
database:
  driver: sqlite
  sqlite_path: /tmp/procurement-test.db
currency:
  rate: 82.5
jobs:
  backlog_report_spec: ""
`), 0o600))

	t.Setenv("PROCUREMENT_HTTP_PORT", "7070")
	t.Setenv("PROCUREMENT_LOG_LEVEL", "debug")

	cfg, err := cmd.LoadConfig(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.HTTP.Port, "environment wins over the file")
	assert.Equal(t, 5*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "sqlite", cfg.Storage().Driver)
	assert.Equal(t, "/tmp/procurement-test.db", cfg.Storage().SQLitePath)
	assert.Equal(t, "debug", cfg.Logging().Level)
	assert.Equal(t, "82.5", cfg.Currency.Rate)
	assert.Empty(t, cfg.Jobs.BacklogReportSpec)
}

func TestLoadConfig_LegacyVariables(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HTTP_PORT", "8181")

	cfg, err := cmd.LoadConfig("", noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "8181", cfg.HTTP.Port)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PROCUREMENT_DATABASE_NAME=from_dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PROCUREMENT_DATABASE_NAME") })

	cfg, err := cmd.LoadConfig("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv", cfg.Database.Name)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("PROCUREMENT_DATABASE_DRIVER", "oracle")
	t.Setenv("PROCUREMENT_CURRENCY_RATE", "-1")

	_, err := cmd.LoadConfig("", noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
	assert.Contains(t, err.Error(), "currency.rate")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), noEnvFile(t))
	assert.Error(t, err)
}
