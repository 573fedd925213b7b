package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // http or stdio
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type StoreConfig struct {
	SnapshotKey string `yaml:"snapshot_key"`
	SeedDemo    bool   `yaml:"seed_demo"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		DB: DBConfig{
			Path: "multisite.db",
		},
		Store: StoreConfig{
			SnapshotKey: "multisite.projects",
			SeedDemo:    true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    "0.0.0.0:9090",
		},
		RateLimit: RateLimitConfig{
			RPS:   20,
			Burst: 40,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file
// (MULTISITE_CONFIG_PATH) and MULTISITE_* environment variables, in that order.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("MULTISITE_CONFIG_PATH"))
}

// LoadFrom is Load with an explicit YAML path; an empty path skips the file.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q: want http or stdio", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Store.SnapshotKey == "" {
		return fmt.Errorf("store.snapshot_key must not be empty")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("MULTISITE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("MULTISITE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid MULTISITE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("MULTISITE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = strings.ToLower(mode)
	}
	if dbPath := os.Getenv("MULTISITE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if key := os.Getenv("MULTISITE_STORE_SNAPSHOT_KEY"); key != "" {
		cfg.Store.SnapshotKey = key
	}
	if v := os.Getenv("MULTISITE_STORE_SEED_DEMO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MULTISITE_STORE_SEED_DEMO: %w", err)
		}
		cfg.Store.SeedDemo = b
	}
	if level := os.Getenv("MULTISITE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("MULTISITE_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if v := os.Getenv("MULTISITE_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MULTISITE_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = b
	}
	if addr := os.Getenv("MULTISITE_METRICS_ADDR"); addr != "" {
		cfg.Metrics.Addr = addr
	}
	if v := os.Getenv("MULTISITE_RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid MULTISITE_RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimit.RPS = rps
	}
	if v := os.Getenv("MULTISITE_RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MULTISITE_RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimit.Burst = burst
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
