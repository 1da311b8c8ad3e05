package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Snapshot  string          `mapstructure:"snapshot"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Extract   ExtractConfig   `mapstructure:"extract"`
	TopN      int             `mapstructure:"top-n"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type EmbeddingConfig struct {
	ServiceURL string `mapstructure:"service-url"`
	CachePath  string `mapstructure:"cache-path"`
}

type ExtractConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads assessrec.yaml (current directory by default), applies defaults,
// and unmarshals via viper. Flags and env bindings set up by the cmd package
// are resolved here too.
func Load() (*Config, error) {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("snapshot", "catalog.snapshot.json")
	viper.SetDefault("embedding.service-url", "http://localhost:8000")
	viper.SetDefault("embedding.cache-path", "")
	viper.SetDefault("extract.timeout", 5*time.Second)
	viper.SetDefault("top-n", 5)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("server.port must be positive, got %d", cfg.Server.Port)
	}
	if cfg.TopN <= 0 {
		return nil, fmt.Errorf("top-n must be positive, got %d", cfg.TopN)
	}

	return &cfg, nil
}
