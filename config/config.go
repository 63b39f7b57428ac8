package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Availability AvailabilityConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	TimeZone string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AvailabilityConfig tunes the slot cache and the storage fetch deadline
// used when computing availability.
type AvailabilityConfig struct {
	CacheTTL     time.Duration
	QueryTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads the given env file (if present) and overlays process
// environment variables on top of it.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  durationOr(v.GetString("JWT_ACCESS_EXPIRY"), 15*time.Minute),
			RefreshExpiry: durationOr(v.GetString("JWT_REFRESH_EXPIRY"), 7*24*time.Hour),
		},
		Availability: AvailabilityConfig{
			CacheTTL:     durationOr(v.GetString("AVAILABILITY_CACHE_TTL"), time.Minute),
			QueryTimeout: durationOr(v.GetString("AVAILABILITY_QUERY_TIMEOUT"), 5*time.Second),
		},
	}

	return config, nil
}

// Location resolves DB.TimeZone, falling back to UTC for unknown names.
func (c DBConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil || c.TimeZone == "" {
		return time.UTC
	}
	return loc
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
