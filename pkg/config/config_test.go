package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Sync.Interval())
	assert.Equal(t, "127.0.0.1:3000", cfg.HTTP.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("API_BASE_URL", "https://dist.example.com/api/")
	v.Set("SYNC_INTERVAL_MS", "500")
	v.Set("HTTP_PORT", 9090)
	v.Set("TOKEN_FILE", "/tmp/tok")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "https://dist.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.Interval())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "/tmp/tok", cfg.API.TokenFile)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("SYNC_INTERVAL_MS", -1)
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("SYNC_INTERVAL_MS", "abc")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultSyncIntervalMS, cfg.Sync.IntervalMS)
}
