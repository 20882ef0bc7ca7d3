package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures everything pokedex reads from file, environment and flags.
type Config struct {
	BaseURL          string        `mapstructure:"base_url"`
	IndexLimit       int           `mapstructure:"index_limit"`
	FetchConcurrency int           `mapstructure:"fetch_concurrency"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
	LogFile          string        `mapstructure:"log_file"`
	LogLevel         string        `mapstructure:"log_level"`
	Server           ServerConfig  `mapstructure:"server"`
}

// ServerConfig configures the JSON surface started by `pokedex serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

const (
	defaultConfigPath      = "~/.config/pokedex/config.toml"
	defaultBaseURL         = "https://pokeapi.co/api/v2"
	defaultIndexLimit      = 1025
	defaultConcurrency     = 16
	defaultRefreshInterval = 500 * time.Millisecond
	defaultLogFile         = "~/.local/state/pokedex/pokedex.log"
	defaultLogLevel        = "info"
	defaultServerAddr      = ":8080"

	envPrefix = "POKEDEX"
)

// Load locates and parses the config file, falling back to defaults when it
// is missing. POKEDEX_* environment variables override file values; nested
// keys use an underscore (POKEDEX_SERVER_ADDR).
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(resolved); err == nil {
		v.SetConfigFile(resolved)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without consulting any file.
func Default() Config {
	cfg := Config{
		BaseURL:          defaultBaseURL,
		IndexLimit:       defaultIndexLimit,
		FetchConcurrency: defaultConcurrency,
		RefreshInterval:  defaultRefreshInterval,
		LogFile:          defaultLogFile,
		LogLevel:         defaultLogLevel,
		Server:           ServerConfig{Addr: defaultServerAddr},
	}
	cfg.normalize()
	return cfg
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if c.IndexLimit <= 0 {
		return fmt.Errorf("index_limit must be positive, got %d", c.IndexLimit)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("index_limit", defaultIndexLimit)
	v.SetDefault("fetch_concurrency", defaultConcurrency)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("refresh_interval", defaultRefreshInterval)
	v.SetDefault("log_file", defaultLogFile)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("server.addr", defaultServerAddr)
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = defaultRefreshInterval
	}
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	c.LogFile = mustExpand(c.LogFile)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
