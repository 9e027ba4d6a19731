package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.SolanaRPCURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 0.01, cfg.ChangeThreshold)
	assert.Equal(t, 0.002039, cfg.FeeDelta)
	assert.Equal(t, "https://solscan.io", cfg.ExplorerURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("CHANGE_THRESHOLD", "0.5")
	t.Setenv("POSTGRES_PORT", "5433")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, 0.5, cfg.ChangeThreshold)
	assert.Equal(t, 5433, cfg.PostgresPort)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			TelegramBotToken: "123:abc",
			SolanaRPCURL:     "http://localhost:8899",
			PostgresDB:       "btcaller",
			PostgresHost:     "localhost",
			PollInterval:     10 * time.Second,
			ChangeThreshold:  0.01,
		}
	}

	assert.NoError(t, base().Validate())

	missingToken := base()
	missingToken.TelegramBotToken = ""
	assert.Error(t, missingToken.Validate())

	badInterval := base()
	badInterval.PollInterval = 0
	assert.Error(t, badInterval.Validate())

	badThreshold := base()
	badThreshold.ChangeThreshold = -1
	assert.Error(t, badThreshold.Validate())
}
