package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"CoinSage/pkg/util"
)

// RiskWeights holds the weighting of the three scoring factors for one
// risk profile. The three values are expected to sum to 1.
type RiskWeights struct {
	Volatility float64 `yaml:"volatility"`
	MarketCap  float64 `yaml:"market_cap"`
	Volume     float64 `yaml:"volume"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	CoinGecko struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Timeout     time.Duration `yaml:"timeout"`
		TopLimit    int           `yaml:"top_limit"`
		HistoryDays int           `yaml:"history_days"`
	} `yaml:"coingecko"`
	Refresh struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"refresh"`
	Cache struct {
		Type          string `yaml:"type"` // memory, redis or layered
		MemoryMaxSize int    `yaml:"memory_max_size"`
		Redis         struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Sentiment struct {
		StartHour int `yaml:"start_hour"`
		EndHour   int `yaml:"end_hour"`
	} `yaml:"sentiment"`
	RiskProfiles map[string]RiskWeights `yaml:"risk_profiles"`
}

// DefaultRiskProfiles returns the built-in weight table used when the
// config file does not override it.
func DefaultRiskProfiles() map[string]RiskWeights {
	return map[string]RiskWeights{
		"conservative": {Volatility: 0.4, MarketCap: 0.4, Volume: 0.2},
		"moderate":     {Volatility: 0.5, MarketCap: 0.3, Volume: 0.2},
		"aggressive":   {Volatility: 0.6, MarketCap: 0.2, Volume: 0.2},
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.CoinGecko.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("CACHE_TYPE"); v != "" {
		c.Cache.Type = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.CoinGecko.Timeout <= 0 {
		c.CoinGecko.Timeout = 15 * time.Second
	}
	if c.CoinGecko.TopLimit <= 0 {
		c.CoinGecko.TopLimit = 50
	}
	if c.CoinGecko.HistoryDays <= 0 {
		c.CoinGecko.HistoryDays = 30
	}
	if c.Refresh.Interval <= 0 {
		c.Refresh.Interval = 5 * time.Minute
	}
	if c.Refresh.CacheTTL <= 0 {
		c.Refresh.CacheTTL = 5 * time.Minute
	}
	if c.Cache.Type == "" {
		c.Cache.Type = "memory"
	}
	if c.Sentiment.StartHour == 0 && c.Sentiment.EndHour == 0 {
		c.Sentiment.StartHour = 5
		c.Sentiment.EndHour = 22
	}
	if len(c.RiskProfiles) == 0 {
		c.RiskProfiles = DefaultRiskProfiles()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Cache.Type != "memory" && c.Cache.Type != "redis" && c.Cache.Type != "layered" {
		return fmt.Errorf("cache.type must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Type)
	}
	if c.Sentiment.StartHour < 0 || c.Sentiment.StartHour > 23 {
		return fmt.Errorf("sentiment.start_hour must be in [0,23]")
	}
	if c.Sentiment.EndHour < 1 || c.Sentiment.EndHour > 24 {
		return fmt.Errorf("sentiment.end_hour must be in [1,24]")
	}
	if c.Sentiment.StartHour >= c.Sentiment.EndHour {
		return fmt.Errorf("sentiment.start_hour must be before sentiment.end_hour")
	}
	for _, profile := range []string{"conservative", "moderate", "aggressive"} {
		if _, ok := c.RiskProfiles[profile]; !ok {
			return fmt.Errorf("risk_profiles.%s is required", profile)
		}
	}
	return nil
}

// Weights returns the weight set for a risk profile.
func (c *Config) Weights(profile string) (RiskWeights, bool) {
	w, ok := c.RiskProfiles[profile]
	return w, ok
}
