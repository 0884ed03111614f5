package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "vivaham_events", cfg.RabbitMQ.Queue)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, 4, cfg.FeaturedLimit)
	assert.False(t, cfg.SeedSampleData)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]interface{}{
		"APP_PORT":         "8080",
		"STORE_DRIVER":     "SQLite",
		"SESSION_STORE":    "redis",
		"SESSION_TTL":      "2h",
		"REDIS_DB":         "3",
		"SEED_SAMPLE_DATA": "true",
		"FEATURED_LIMIT":   "0",
		"LOG_FORMAT":       "JSON",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, 4, cfg.FeaturedLimit)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestFromViper_RejectsUnknownBackends(t *testing.T) {
	_, err := FromViper(newViper(map[string]interface{}{"STORE_DRIVER": "mongo"}))
	assert.Error(t, err)

	_, err = FromViper(newViper(map[string]interface{}{"SESSION_STORE": "files"}))
	assert.Error(t, err)

	_, err = FromViper(newViper(map[string]interface{}{"JWT_SECRET": ""}))
	assert.Error(t, err)
}

func TestLoadDotEnvs_ProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VIVAHAM_TEST_A=from-file\nVIVAHAM_TEST_B=from-file\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("VIVAHAM_TEST_B=from-local\n"), 0o600))
	t.Setenv("APP_ENV", "test")
	t.Setenv("VIVAHAM_TEST_A", "from-env")
	os.Unsetenv("VIVAHAM_TEST_B")
	t.Cleanup(func() { os.Unsetenv("VIVAHAM_TEST_B") })

	LoadDotEnvs(dir + string(filepath.Separator))

	assert.Equal(t, "from-env", os.Getenv("VIVAHAM_TEST_A"))
	assert.Equal(t, "from-local", os.Getenv("VIVAHAM_TEST_B"))
}
