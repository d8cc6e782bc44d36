package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// MiddlewareConfig holds the middleware API client configuration.
type MiddlewareConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIToken             string `yaml:"apiToken"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// HederaServiceConfig holds the Hedera service API client configuration.
type HederaServiceConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// MirrorConfig holds the mirror node client configuration.
type MirrorConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimit            float64 `yaml:"rateLimit"`
	BurstLimit           int     `yaml:"burstLimit"`
}

// PaymentsConfig holds the payments backend client configuration.
type PaymentsConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIToken             string `yaml:"apiToken"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// NetworkConfig identifies the Hedera network this deployment targets.
type NetworkConfig struct {
	Name                 string `yaml:"name"` // "testnet" or "mainnet"
	WalletAssociationURL string `yaml:"walletAssociationURL"`
}

// PollingConfig holds the dashboard refresh intervals.
type PollingConfig struct {
	MarketIntervalSeconds    int `yaml:"marketIntervalSeconds"`
	AnalyticsIntervalMinutes int `yaml:"analyticsIntervalMinutes"`
	TickTimeoutSeconds       int `yaml:"tickTimeoutSeconds"`
}

// TradeConfig holds trade orchestration tunables.
type TradeConfig struct {
	DefaultSlippage         int `yaml:"defaultSlippage"`
	QuoteSlippage           int `yaml:"quoteSlippage"`
	DebounceMillis          int `yaml:"debounceMillis"`
	AssociationPollSeconds  int `yaml:"associationPollSeconds"`
	AssociationPollAttempts int `yaml:"associationPollAttempts"`
	PostTradeRefreshMillis  int `yaml:"postTradeRefreshMillis"`
}

// SessionConfig holds the wallet session store configuration.
type SessionConfig struct {
	StateDir   string `yaml:"stateDir"`
	TTLMinutes int    `yaml:"ttlMinutes"`
}

// CacheConfig holds the market/quote cache configuration.
type CacheConfig struct {
	MarketTTLSeconds       int `yaml:"marketTTLSeconds"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Middleware    MiddlewareConfig    `yaml:"middleware"`
	HederaService HederaServiceConfig `yaml:"hederaService"`
	Mirror        MirrorConfig        `yaml:"mirror"`
	Payments      PaymentsConfig      `yaml:"payments"`
	Network       NetworkConfig       `yaml:"network"`
	Polling       PollingConfig       `yaml:"polling"`
	Trade         TradeConfig         `yaml:"trade"`
	Session       SessionConfig       `yaml:"session"`
	Cache         CacheConfig         `yaml:"cache"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// Load reads the YAML configuration file from the given path, unmarshals
// it, and applies defaults for unset values.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.HederaService.BaseURL == "" {
		cfg.HederaService.BaseURL = "http://localhost:3003"
		logrus.Infof("HederaService.BaseURL not set, defaulting to %s", cfg.HederaService.BaseURL)
	}
	if cfg.HederaService.RequestTimeoutMillis <= 0 {
		cfg.HederaService.RequestTimeoutMillis = 10000
	}
	if cfg.Middleware.RequestTimeoutMillis <= 0 {
		cfg.Middleware.RequestTimeoutMillis = 10000
	}
	if cfg.Payments.RequestTimeoutMillis <= 0 {
		cfg.Payments.RequestTimeoutMillis = 10000
	}

	if cfg.Mirror.BaseURL == "" {
		cfg.Mirror.BaseURL = "https://testnet.mirrornode.hedera.com"
		logrus.Infof("Mirror.BaseURL not set, defaulting to %s", cfg.Mirror.BaseURL)
	}
	if cfg.Mirror.RequestTimeoutMillis <= 0 {
		cfg.Mirror.RequestTimeoutMillis = 10000
	}
	if cfg.Mirror.RateLimit <= 0 {
		cfg.Mirror.RateLimit = 5
	}
	if cfg.Mirror.BurstLimit <= 0 {
		cfg.Mirror.BurstLimit = 2
	}

	if cfg.Network.Name == "" {
		cfg.Network.Name = "testnet"
	}
	if cfg.Network.WalletAssociationURL == "" {
		cfg.Network.WalletAssociationURL = "https://hashpack.app/dapp"
	}

	if cfg.Polling.MarketIntervalSeconds <= 0 {
		cfg.Polling.MarketIntervalSeconds = 30
	}
	if cfg.Polling.AnalyticsIntervalMinutes <= 0 {
		cfg.Polling.AnalyticsIntervalMinutes = 10
	}
	if cfg.Polling.TickTimeoutSeconds <= 0 {
		cfg.Polling.TickTimeoutSeconds = 20
	}

	if cfg.Trade.DefaultSlippage <= 0 {
		cfg.Trade.DefaultSlippage = 35
	}
	if cfg.Trade.QuoteSlippage <= 0 {
		cfg.Trade.QuoteSlippage = 5
	}
	if cfg.Trade.DebounceMillis <= 0 {
		cfg.Trade.DebounceMillis = 500
	}
	if cfg.Trade.AssociationPollSeconds <= 0 {
		cfg.Trade.AssociationPollSeconds = 2
	}
	if cfg.Trade.AssociationPollAttempts <= 0 {
		cfg.Trade.AssociationPollAttempts = 60
	}
	if cfg.Trade.PostTradeRefreshMillis <= 0 {
		cfg.Trade.PostTradeRefreshMillis = 2000
	}

	if cfg.Session.StateDir == "" {
		cfg.Session.StateDir = "data/state"
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 60
		logrus.Infof("Session.TTLMinutes not set, defaulting to %d minutes", cfg.Session.TTLMinutes)
	}

	if cfg.Cache.MarketTTLSeconds <= 0 {
		cfg.Cache.MarketTTLSeconds = 15
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
