package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marcelsud/bookshelf/recommend"
	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Values come from an optional .env (TOML) in
 * the working directory, overridden by environment variables.
 */

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogJSON  bool   `mapstructure:"LOG_JSON"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	PostgresHost               string `mapstructure:"POSTGRES_HOST"`
	PostgresPort               int    `mapstructure:"POSTGRES_PORT"`
	PostgresUser               string `mapstructure:"POSTGRES_USER"`
	PostgresPassword           string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB                 string `mapstructure:"POSTGRES_DB"`
	PostgresSSLMode            string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresMaxOpenConns       int    `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	PostgresMaxIdleConns       int    `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
	PostgresConnMaxLifeMinutes int    `mapstructure:"POSTGRES_CONN_MAX_LIFE_MINUTES"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	MetricsEnabled     bool   `mapstructure:"METRICS_ENABLED"`

	RecommendMaxSuggestions int    `mapstructure:"RECOMMEND_MAX_SUGGESTIONS"`
	RecommendFallbackGenre  string `mapstructure:"RECOMMEND_FALLBACK_GENRE"`
	RecommendBackfill       bool   `mapstructure:"RECOMMEND_BACKFILL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", true)

	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("SQLITE_PATH", "bookshelf.db")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("POSTGRES_DB", "bookshelf")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_MAX_OPEN_CONNS", 25)
	v.SetDefault("POSTGRES_MAX_IDLE_CONNS", 5)
	v.SetDefault("POSTGRES_CONN_MAX_LIFE_MINUTES", 5)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 0)
	v.SetDefault("METRICS_ENABLED", true)

	defaults := recommend.DefaultSettings()
	v.SetDefault("RECOMMEND_MAX_SUGGESTIONS", defaults.MaxSuggestions)
	v.SetDefault("RECOMMEND_FALLBACK_GENRE", defaults.FallbackGenre)
	v.SetDefault("RECOMMEND_BACKFILL", defaults.Backfill)
}

// GetConfig reads .env from the working directory when present
func GetConfig() (*Config, error) {
	return Load(".")
}

// Load reads .env from dir. A missing file is not an error; defaults and the environment still apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.PostgresHost == "" || c.PostgresUser == "" || c.PostgresDB == "" {
			return errors.New("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB are required for the postgres driver")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want sqlite, postgres or redis)", c.StoreDriver)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative (got %d)", c.RateLimitPerMinute)
	}
	if err := c.RecommendSettings().Validate(); err != nil {
		return fmt.Errorf("recommendation settings: %w", err)
	}
	return nil
}

func (c *Config) PostgresConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) RecommendSettings() recommend.Settings {
	return recommend.Settings{
		MaxSuggestions: c.RecommendMaxSuggestions,
		FallbackGenre:  c.RecommendFallbackGenre,
		Backfill:       c.RecommendBackfill,
	}
}
