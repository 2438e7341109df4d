// Package config loads runtime settings: a .env file first, then
// configs/<env>/taskhome.yaml (configs/example as fallback), then
// TASKHOME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/monocle-dev/taskhome/internal/logger"
	"github.com/spf13/viper"
)

const (
	ServiceName = "taskhome"
	configDir   = "configs"

	ModeHTTP   = "http"
	ModeSocket = "socket"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"server"`
	Slack     SlackConfig     `mapstructure:"slack"`
	Tenancy   TenancyConfig   `mapstructure:"tenancy"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Log       logger.Config   `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Port       int           `mapstructure:"port"`
	Mode       string        `mapstructure:"mode"` // http or socket
	AckTimeout time.Duration `mapstructure:"ack_timeout"`
}

type SlackConfig struct {
	BotToken      string        `mapstructure:"bot_token"`
	AppToken      string        `mapstructure:"app_token"`
	SigningSecret string        `mapstructure:"signing_secret"`
	ClientID      string        `mapstructure:"client_id"`
	ClientSecret  string        `mapstructure:"client_secret"`
	RedirectURL   string        `mapstructure:"redirect_url"`
	Scopes        []string      `mapstructure:"scopes"`
	StateSecret   string        `mapstructure:"state_secret"`
	StateTTL      time.Duration `mapstructure:"state_ttl"`
	APIURL        string        `mapstructure:"api_url"`
}

type TenancyConfig struct {
	MultiTenant bool `mapstructure:"multi_tenant"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres, mysql or sqlite
	DSN    string `mapstructure:"dsn"`
}

type DirectoryConfig struct {
	// SyncInterval enables a periodic roster sync when positive.
	SyncInterval time.Duration `mapstructure:"sync_interval"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", ModeHTTP)
	v.SetDefault("server.ack_timeout", 2500*time.Millisecond)
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.app_token", "")
	v.SetDefault("slack.signing_secret", "")
	v.SetDefault("slack.client_id", "")
	v.SetDefault("slack.client_secret", "")
	v.SetDefault("slack.redirect_url", "")
	v.SetDefault("slack.scopes", []string{"users:read", "users:read.email"})
	v.SetDefault("slack.state_secret", "")
	v.SetDefault("slack.state_ttl", 10*time.Minute)
	v.SetDefault("slack.api_url", "")
	v.SetDefault("tenancy.multi_tenant", false)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("directory.sync_interval", time.Duration(0))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.development", false)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// Load reads the configuration. A missing .env or yaml file is not an
// error: defaults and the environment still apply.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(ServiceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(configDir, env)
	}
	v.SetDefault("env", env)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

func readConfigFile(v *viper.Viper, configPath string) error {
	v.SetConfigName(ServiceName)
	v.AddConfigPath(configPath)

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}

	v.AddConfigPath(filepath.Join(configDir, "example"))
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read example config: %w", err)
	}

	return nil
}

// Validate checks that the credentials required by the selected transport
// and tenancy are present.
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if value == "" {
			missing = append(missing, key)
		}
	}

	switch c.Server.Mode {
	case ModeHTTP:
		require("slack.signing_secret", c.Slack.SigningSecret)
	case ModeSocket:
		require("slack.app_token", c.Slack.AppToken)
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}

	if c.Tenancy.MultiTenant {
		require("slack.client_id", c.Slack.ClientID)
		require("slack.client_secret", c.Slack.ClientSecret)
		require("slack.state_secret", c.Slack.StateSecret)
	} else {
		require("slack.bot_token", c.Slack.BotToken)
	}

	require("database.dsn", c.Database.DSN)

	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}
