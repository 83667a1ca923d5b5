package config

import (
	"strings"
	"time"

	"poolwatch/model"
)

// Config holds the application configuration
type Config struct {
	Blockfrost BlockfrostConfig `mapstructure:"blockfrost"`
	Binance    BinanceConfig    `mapstructure:"binance"`
	Pool       PoolConfig       `mapstructure:"pool"`
	Poll       PollConfig       `mapstructure:"poll"`
	Net        NetConfig        `mapstructure:"net"`
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	InfluxDB   InfluxDBConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type BlockfrostConfig struct {
	URLs     []string `mapstructure:"url"`
	APIKey   string   `mapstructure:"apiKey"`
	MaxPages int      `mapstructure:"maxPages"`
}

type BinanceConfig struct {
	URLs   []string `mapstructure:"url"`
	Symbol string   `mapstructure:"symbol"`
}

type PoolConfig struct {
	Hash string `mapstructure:"hash"`
}

type PollConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	Dev          bool          `mapstructure:"dev"`
	NetworkEvery uint64        `mapstructure:"networkEvery"`
	MaxFailures  uint64        `mapstructure:"maxFailures"`
	// ReconcileConcurrency bounds concurrent block fetches during leaderlog reconciliation.
	ReconcileConcurrency int `mapstructure:"reconcileConcurrency"`
	// ReconcileFailuresCount makes a failed reconciliation fail the whole cycle.
	// Off by default: reconciliation errors are logged and do not move the failure counter.
	ReconcileFailuresCount bool `mapstructure:"reconcileFailuresCount"`
}

type NetConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	APIKey string `mapstructure:"apiKey"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	URL    string `mapstructure:"url"`
}

type InfluxDBConfig struct {
	URL    string `mapstructure:"url"`
	Token  string `mapstructure:"token"`
	Org    string `mapstructure:"org"`
	Bucket string `mapstructure:"bucket"`
}

type RedisConfig struct {
	URL    string `mapstructure:"url"`
	Stream string `mapstructure:"stream"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

const (
	DefaultBlockfrostURL = "https://cardano-mainnet.blockfrost.io/api/v0"
	DefaultBinanceURL    = "https://api1.binance.com"
	DefaultPoolHash      = "2220471638833bba1e69d450b5da722b592888d7a56f5cddf6efe1eb"
)

// Defaults returns every key with its default value, in viper's dotted form.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"blockfrost.url":              []string{DefaultBlockfrostURL},
		"blockfrost.maxPages":         20,
		"binance.url":                 []string{DefaultBinanceURL},
		"binance.symbol":              "ADAUSDT",
		"pool.hash":                   DefaultPoolHash,
		"poll.interval":               time.Minute,
		"poll.dev":                    false,
		"poll.networkEvery":           10,
		"poll.maxFailures":            10,
		"poll.reconcileConcurrency":   8,
		"poll.reconcileFailuresCount": false,
		"net.timeout":                 30 * time.Second,
		"server.addr":                 ":8080",
		"store.driver":                "sqlite",
		"store.path":                  "./poolwatch.db",
		"redis.stream":                "leaderlogs",
		"logging.level":               "info",
	}
}

// Validate reports every missing required parameter in one configuration error.
func (c *Config) Validate() error {
	var missing []string
	if c.Blockfrost.APIKey == "" {
		missing = append(missing, "blockfrost.apiKey")
	}
	if c.Pool.Hash == "" {
		missing = append(missing, "pool.hash")
	}
	if len(c.Blockfrost.URLs) == 0 {
		missing = append(missing, "blockfrost.url")
	}
	if len(c.Binance.URLs) == 0 {
		missing = append(missing, "binance.url")
	}
	if c.Poll.Interval <= 0 {
		missing = append(missing, "poll.interval")
	}
	switch c.Store.Driver {
	case "sqlite":
		if c.Store.Path == "" {
			missing = append(missing, "store.path")
		}
	case "postgres":
		if c.Store.URL == "" {
			missing = append(missing, "store.url")
		}
	default:
		return model.NewConfigurationError("unsupported store driver " + c.Store.Driver + " (use sqlite or postgres)")
	}
	if len(missing) > 0 {
		return model.NewConfigurationError("undefined variables " + strings.Join(missing, ", "))
	}
	return nil
}
