package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func setCreds(t *testing.T) {
	t.Helper()
	t.Setenv("API_KEY", "test-key")
	t.Setenv("API_SECRET", "test-secret")
	t.Setenv("BASE_URL", "https://paper-api.alpaca.markets")
}

func TestLoad_Defaults(t *testing.T) {
	setCreds(t)
	path := writeConfig(t, "strategy: {}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "SPY", cfg.Strategy.Symbol)
	assert.Equal(t, 0.5, cfg.Strategy.CashAtRisk)
	assert.Equal(t, 24*time.Hour, cfg.Interval())
	assert.Equal(t, "https://data.alpaca.markets", cfg.API.DataBase)
	assert.Equal(t, "sentibot.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "trading_bot.log", cfg.Log.File)
}

func TestLoad_MissingCredentialsIsFatal(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("API_SECRET", "")
	t.Setenv("BASE_URL", "")
	path := writeConfig(t, "strategy: {}\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_SECRET")
	assert.Contains(t, err.Error(), "BASE_URL")
	assert.NotContains(t, err.Error(), "API_KEY,")
}

func TestLoad_CashAtRiskRange(t *testing.T) {
	setCreds(t)

	_, err := Load(writeConfig(t, "strategy:\n  cash_at_risk: 1.5\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "strategy:\n  cash_at_risk: -0.1\n"))
	assert.Error(t, err)

	cfg, err := Load(writeConfig(t, "strategy:\n  cash_at_risk: 1.0\n"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Strategy.CashAtRisk)
}

func TestLoad_SymbolNormalized(t *testing.T) {
	setCreds(t)
	cfg, err := Load(writeConfig(t, "strategy:\n  symbol: \" nvda \"\n"))
	require.NoError(t, err)
	assert.Equal(t, "NVDA", cfg.Strategy.Symbol)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setCreds(t)
	t.Setenv("SYMBOL", "QQQ")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "strategy:\n  symbol: SPY\nlog:\n  level: info\n"))
	require.NoError(t, err)
	assert.Equal(t, "QQQ", cfg.Strategy.Symbol)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	setCreds(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
