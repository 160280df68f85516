package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "s"}))
	require.NoError(t, err)
	assert.Equal(t, ":9091", cfg.HTTPAddr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "carts.db", cfg.CartDBPath)
	assert.Equal(t, "yemalin-api", cfg.JWTIssuer)
	assert.Equal(t, "yemalin-app", cfg.JWTAudience)
	assert.Equal(t, 7*24*time.Hour, cfg.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 5*time.Minute, cfg.ReminderInterval)
	assert.Equal(t, time.Second, cfg.SlowQueryThreshold)
	assert.Empty(t, cfg.AdminEmails)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":             "s",
		"HTTP_ADDR":              ":8080",
		"DATABASE_URL":           "postgres://localhost/shop",
		"JWT_EXPIRES_IN":         "15m",
		"JWT_REFRESH_EXPIRES_IN": "2d",
		"REMINDER_INTERVAL":      "30s",
		"ADMIN_EMAILS":           " Boss@Example.com, ,ops@example.com ",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 30*time.Second, cfg.ReminderInterval)
	assert.Equal(t, []string{"boss@example.com", "ops@example.com"}, cfg.AdminEmails)

	tc := cfg.TokenConfig()
	assert.Equal(t, "s", tc.Secret)
	assert.Equal(t, 15*time.Minute, tc.AccessTTL)
}

func TestFromEnv_Errors(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{}))
	assert.Error(t, err)

	for key, val := range map[string]string{
		"JWT_EXPIRES_IN":       "soon",
		"REMINDER_INTERVAL":    "0s",
		"SLOW_QUERY_THRESHOLD": "fast",
	} {
		_, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "s", key: val}))
		assert.Error(t, err, key)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nCART_DB_PATH=/tmp/x.db\n"), 0o600))
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CART_DB_PATH", "")
	// godotenv does not override variables that are already present, unset them
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("CART_DB_PATH")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "/tmp/x.db", cfg.CartDBPath)
}

func TestStorageFromEnv_NoSecretNeeded(t *testing.T) {
	st, err := StorageFromEnv(envOf(map[string]string{"DATABASE_URL": "postgres://localhost/shop"}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/shop", st.DatabaseURL)
	assert.Equal(t, time.Second, st.SlowQueryThreshold)

	st, err = StorageFromEnv(envOf(map[string]string{"SLOW_QUERY_THRESHOLD": "250ms"}))
	require.NoError(t, err)
	assert.Empty(t, st.DatabaseURL)
	assert.Equal(t, 250*time.Millisecond, st.SlowQueryThreshold)

	_, err = StorageFromEnv(envOf(map[string]string{"SLOW_QUERY_THRESHOLD": "fast"}))
	assert.Error(t, err)
}
