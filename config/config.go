package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultDatabaseDSN    = "sqlite:portfolio.db"
	DefaultMediaDir       = "media"
	DefaultCommandPrefix  = "/"
	DefaultMetricsAddress = ":9090"
	DefaultCommandTimeout = 2 * time.Minute
	DefaultMaxMediaBytes  = 50 << 20
)

// ErrMissingToken is returned when no Discord bot token is configured.
var ErrMissingToken = errors.New("discord token is not set (DISCORD_TOKEN)")

// Config struct to hold the configuration settings
type Config struct {
	Discord       DiscordConfig       `yaml:"discord"`
	Database      DatabaseConfig      `yaml:"database"`
	Media         MediaConfig         `yaml:"media"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DiscordConfig holds Discord configuration.
type DiscordConfig struct {
	Token          string        `yaml:"token"`
	Prefix         string        `yaml:"prefix"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
}

// DatabaseConfig holds the storage DSN: "sqlite:<path>" or "postgres://…".
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// MediaConfig holds the media directory settings.
type MediaConfig struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// NATSConfig holds NATS configuration. An empty URL keeps events in-process.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // text|json
	Environment    string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file. A missing file is not
// an error; values then come from the environment. A .env file in the working
// directory is loaded first and never overrides variables already set.
func LoadConfig(filename string) (*Config, error) {
	cfg, err := load(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStorageConfig is LoadConfig without the token requirement, for commands
// that only touch the database.
func LoadStorageConfig(filename string) (*Config, error) {
	return load(filename)
}

func load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// --- OVERRIDE WITH ENV VARS IF PRESENT ---
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv("COMMAND_PREFIX"); v != "" {
		cfg.Discord.Prefix = v
	}
	if v := os.Getenv("COMMAND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid COMMAND_TIMEOUT value: %w", err)
		}
		cfg.Discord.CommandTimeout = d
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("MEDIA_DIR"); v != "" {
		cfg.Media.Dir = v
	}
	if v := os.Getenv("MEDIA_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MEDIA_MAX_BYTES value: %w", err)
		}
		cfg.Media.MaxBytes = n
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Discord.Prefix == "" {
		cfg.Discord.Prefix = DefaultCommandPrefix
	}
	if cfg.Discord.CommandTimeout <= 0 {
		cfg.Discord.CommandTimeout = DefaultCommandTimeout
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = DefaultDatabaseDSN
	}
	if cfg.Media.Dir == "" {
		cfg.Media.Dir = DefaultMediaDir
	}
	if cfg.Media.MaxBytes <= 0 {
		cfg.Media.MaxBytes = DefaultMaxMediaBytes
	}
	if cfg.Observability.MetricsAddress == "" {
		cfg.Observability.MetricsAddress = DefaultMetricsAddress
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	if cfg.Observability.LogFormat == "" {
		cfg.Observability.LogFormat = "text"
	}
}

// Validate reports configuration the bot cannot start with.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return ErrMissingToken
	}
	return nil
}
