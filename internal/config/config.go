package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Server struct {
	Port              string `mapstructure:"port"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

type Sina struct {
	URL        string `mapstructure:"url"`
	Referer    string `mapstructure:"referer"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

type Yahoo struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSec     int    `mapstructure:"timeout_sec"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
}

type News struct {
	BaseURL          string `mapstructure:"base_url"`
	TimeoutSec       int    `mapstructure:"timeout_sec"`
	FetchIntervalSec int    `mapstructure:"fetch_interval_sec"`
	PassIntervalSec  int    `mapstructure:"pass_interval_sec"`
}

type Config struct {
	Version string `mapstructure:"version"`
	Server  Server `mapstructure:"server"`
	Sina    Sina   `mapstructure:"sina"`
	Yahoo   Yahoo  `mapstructure:"yahoo"`
	News    News   `mapstructure:"news"`
}

// Load reads config.yaml (or the file at path when non-empty) and applies
// STOCKBOARD_-prefixed environment overrides on top of the defaults. A
// missing file is fine; everything has a default.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.request_timeout_sec", 20)
	v.SetDefault("sina.url", "https://hq.sinajs.cn/list=")
	v.SetDefault("sina.referer", "https://finance.sina.com.cn/")
	v.SetDefault("sina.timeout_sec", 5)
	v.SetDefault("yahoo.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo.timeout_sec", 10)
	v.SetDefault("yahoo.max_concurrency", 16)
	v.SetDefault("news.base_url", "https://news.google.com/rss/search")
	v.SetDefault("news.timeout_sec", 5)
	v.SetDefault("news.fetch_interval_sec", 3)
	v.SetDefault("news.pass_interval_sec", 1200)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("STOCKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
