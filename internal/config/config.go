package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	API struct {
		Enabled         bool   `yaml:"enabled"`
		BaseURL         string `yaml:"base_url"`
		APIKey          string `yaml:"api_key"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"api"`

	Admin struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"admin"`

	Telegram struct {
		Enabled  bool    `yaml:"enabled"`
		BotToken string  `yaml:"bot_token"`
		Managers []int64 `yaml:"managers"`
	} `yaml:"telegram"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Session struct {
		TimeoutMinutes int `yaml:"timeout_minutes"`
		CleanupSeconds int `yaml:"cleanup_seconds"`
	} `yaml:"session"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/eclat.db"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) SessionTimeout() time.Duration {
	if c.Session.TimeoutMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.Session.TimeoutMinutes) * time.Minute
}

func (c *Config) SessionCleanupInterval() time.Duration {
	if c.Session.CleanupSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Session.CleanupSeconds) * time.Second
}

func (c *Config) CatalogCacheTTL() time.Duration {
	if c.API.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.API.CacheTTLSeconds) * time.Second
}
