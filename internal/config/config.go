package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"weather-dashboard/pkg/database"
)

// EnvPrefix is prepended to every environment override, e.g. WEATHER_SERVER_PORT
const EnvPrefix = "WEATHER"

// Provider modes
const (
	ProviderWttr      = "wttr"
	ProviderSimulated = "simulated"
)

// Config holds all configuration for the weather dashboard
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Provider ProviderConfig `mapstructure:"provider"`
	History  HistoryConfig  `mapstructure:"history"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// ProviderConfig selects and tunes the weather source
type ProviderConfig struct {
	Mode        string        `mapstructure:"mode"` // wttr, simulated
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	DefaultCity string        `mapstructure:"default_city"`
	Seed        uint64        `mapstructure:"seed"` // simulated mode only, 0 means random
}

// HistoryConfig toggles the lookup history
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DatabaseConfig holds PostgreSQL configuration for the lookup history
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// LoadConfig reads config.yaml from . or ./config if present, then applies
// WEATHER_* environment overrides on top of the defaults
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadConfigFile reads configuration from an explicit file path
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("logging.level", "info")

	v.SetDefault("provider.mode", ProviderWttr)
	v.SetDefault("provider.base_url", "https://wttr.in")
	v.SetDefault("provider.timeout", "15s")
	v.SetDefault("provider.user_agent", "WeatherDashboard/1.0")
	v.SetDefault("provider.default_city", "London")
	v.SetDefault("provider.seed", 0)

	v.SetDefault("history.enabled", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "weather")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "weather_dashboard")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Provider.Mode = strings.ToLower(strings.TrimSpace(cfg.Provider.Mode))
	return &cfg, nil
}

// Validate checks the configuration for values the services cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Provider.Mode {
	case ProviderWttr:
		if strings.TrimSpace(c.Provider.BaseURL) == "" {
			errs = append(errs, errors.New("provider.base_url is required in wttr mode"))
		}
		if c.Provider.Timeout <= 0 {
			errs = append(errs, errors.New("provider.timeout must be positive"))
		}
	case ProviderSimulated:
	default:
		errs = append(errs, fmt.Errorf("provider.mode must be %q or %q, got %q", ProviderWttr, ProviderSimulated, c.Provider.Mode))
	}

	if strings.TrimSpace(c.Provider.DefaultCity) == "" {
		errs = append(errs, errors.New("provider.default_city must not be empty"))
	}

	if c.History.Enabled {
		if c.Database.Host == "" || c.Database.Database == "" {
			errs = append(errs, errors.New("database.host and database.database are required when history is enabled"))
		}
		if c.Database.MaxOpenConns <= 0 {
			errs = append(errs, errors.New("database.max_open_conns must be positive"))
		}
	}

	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Postgres converts the database section into a connection pool configuration
func (d DatabaseConfig) Postgres() *database.Config {
	return &database.Config{
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		Database:        d.Database,
		SSLMode:         d.SSLMode,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
		ConnMaxIdleTime: d.ConnMaxIdleTime,
	}
}
