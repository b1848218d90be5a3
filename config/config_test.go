package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
db:
  host: localhost
  port: 5432
  user: app
  password: secret
  name: appdb
redis:
  addr: localhost:6379
jwt:
  secret: topsecret
server:
  port: ":9090"
  env: development
`

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfig(t, validYAML)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	writeConfig(t, validYAML)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("RATE_LIMIT_MAX", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 5, cfg.RateLimit.MaxRequests)
}

func TestLoad_MissingMandatoryValues(t *testing.T) {
	writeConfig(t, `
db:
  host: localhost
  port: 5432
  user: app
  name: appdb
redis:
  addr: localhost:6379
`)
	// No jwt secret anywhere.
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BcryptCostOutOfRange(t *testing.T) {
	writeConfig(t, validYAML)
	t.Setenv("BCRYPT_COST", "99")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcrypt cost")
}

func TestMode_ReadsEnvPerCall(t *testing.T) {
	writeConfig(t, validYAML)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Mode())

	t.Setenv("APP_ENV", "production")
	assert.Equal(t, "production", cfg.Mode())
}
