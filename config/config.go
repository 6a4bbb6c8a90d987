package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Demand    DemandConfig    `mapstructure:"demand"`
	Train     TrainConfig     `mapstructure:"train"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ArtifactsConfig struct {
	Dir string `mapstructure:"dir"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type CacheConfig struct {
	// Addr enables the redis recommendation cache when non-empty.
	Addr       string `mapstructure:"addr"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type DemandConfig struct {
	BaseDemand float64 `mapstructure:"base_demand"`
	Elasticity float64 `mapstructure:"elasticity"`
}

type TrainConfig struct {
	Timesteps   int     `mapstructure:"timesteps"`
	LogEvery    int     `mapstructure:"log_every"`
	Alpha       float64 `mapstructure:"alpha"`
	Epsilon     float64 `mapstructure:"epsilon"`
	Temperature float64 `mapstructure:"temperature"`
	RewardScale float64 `mapstructure:"reward_scale"`
}

// Load reads the optional yaml config file and environment overrides
// (PRICING_* variables) on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("database.path", "pricing.db")
	v.SetDefault("artifacts.dir", "models")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.ttl_seconds", 30)
	v.SetDefault("demand.base_demand", 100)
	v.SetDefault("demand.elasticity", -1.5)
	v.SetDefault("train.timesteps", 20000)
	v.SetDefault("train.log_every", 1000)
	v.SetDefault("train.alpha", 0.1)
	v.SetDefault("train.epsilon", 0.1)
	v.SetDefault("train.temperature", 1.0)
	v.SetDefault("train.reward_scale", 1000)

	v.SetEnvPrefix("PRICING")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
