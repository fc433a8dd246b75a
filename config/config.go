package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full bot configuration.
type Config struct {
	Strategy StrategyConfig `yaml:"strategy"`
	API      APIConfig      `yaml:"api"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`

	// Credentials come from the environment only, never from YAML.
	Credentials Credentials `yaml:"-"`
}

// StrategyConfig holds the decision-engine parameters.
type StrategyConfig struct {
	Symbol        string  `yaml:"symbol"`
	CashAtRisk    float64 `yaml:"cash_at_risk"`
	IntervalHours int     `yaml:"interval_hours"`
}

// APIConfig holds the collaborator base URLs.
type APIConfig struct {
	DataBase      string `yaml:"data_base"`      // Alpaca market data + news API
	SentimentBase string `yaml:"sentiment_base"` // FinBERT scoring service
}

// StorageConfig controls where the trade log is persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls logging format, level, and optional file output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
	File   string `yaml:"file"`   // append-only log file, "" = stdout only
}

// Credentials are the broker API credentials, read once at startup.
type Credentials struct {
	APIKey    string
	APISecret string
	BaseURL   string // Alpaca trading API base (paper or live)
}

// Load reads the YAML config and the .env file if present, then validates.
// Missing credentials are a fatal startup error by design: the bot must not
// come up half-configured.
func Load(path string) (*Config, error) {
	// Load .env if present (silently skip if there is none).
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.loadCredentials(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Interval returns the trading iteration interval as a time.Duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Strategy.IntervalHours) * time.Hour
}

// loadCredentials reads API_KEY, API_SECRET, and BASE_URL from the
// environment. All three are required.
func (c *Config) loadCredentials() error {
	c.Credentials = Credentials{
		APIKey:    strings.TrimSpace(os.Getenv("API_KEY")),
		APISecret: strings.TrimSpace(os.Getenv("API_SECRET")),
		BaseURL:   strings.TrimSpace(os.Getenv("BASE_URL")),
	}
	var missing []string
	if c.Credentials.APIKey == "" {
		missing = append(missing, "API_KEY")
	}
	if c.Credentials.APISecret == "" {
		missing = append(missing, "API_SECRET")
	}
	if c.Credentials.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config.Load: missing credentials in environment: %s (check your .env)",
			strings.Join(missing, ", "))
	}
	return nil
}

// validate rejects parameter values the strategy cannot run with.
func (c *Config) validate() error {
	if c.Strategy.CashAtRisk <= 0 || c.Strategy.CashAtRisk > 1 {
		return fmt.Errorf("config.Load: strategy.cash_at_risk must be in (0, 1], got %v",
			c.Strategy.CashAtRisk)
	}
	if c.Strategy.IntervalHours <= 0 {
		return fmt.Errorf("config.Load: strategy.interval_hours must be positive, got %d",
			c.Strategy.IntervalHours)
	}
	return nil
}

// applyEnvOverrides overrides YAML values with environment variables when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Strategy.Symbol = v
	}
}

// setDefaults fills in sensible values for anything left unset.
func setDefaults(cfg *Config) {
	if cfg.Strategy.Symbol == "" {
		cfg.Strategy.Symbol = "SPY"
	}
	cfg.Strategy.Symbol = strings.ToUpper(strings.TrimSpace(cfg.Strategy.Symbol))
	if cfg.Strategy.CashAtRisk == 0 {
		cfg.Strategy.CashAtRisk = 0.5
	}
	if cfg.Strategy.IntervalHours == 0 {
		cfg.Strategy.IntervalHours = 24
	}
	if cfg.API.DataBase == "" {
		cfg.API.DataBase = "https://data.alpaca.markets"
	}
	if cfg.API.SentimentBase == "" {
		cfg.API.SentimentBase = "http://localhost:8000"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "sentibot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "trading_bot.log"
	}
}
