package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/loganlanou/reqres-dashboard/storage"
)

const developmentSecret = "development-secret"

var ErrInsecureSecret = errors.New("SESSION_SECRET must be set in production")

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8000"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	API struct {
		BaseURL       string        `env:"API_BASE_URL" envDefault:"https://reqres.in/api"`
		Key           string        `env:"API_KEY" envDefault:"reqres-free-v1"`
		Timeout       time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
		ProfileUserID int           `env:"PROFILE_USER_ID" envDefault:"2"`
	}

	Session struct {
		Secret string        `env:"SESSION_SECRET" envDefault:"development-secret"`
		MaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`
	}

	Store struct {
		Driver        string `env:"STORE_DRIVER" envDefault:"sqlite"`
		DBPath        string `env:"DB_PATH" envDefault:"./db/dashboard.db"`
		RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		RedisPassword string `env:"REDIS_PASSWORD"`
		RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	}
}

// LoadConfig reads the environment, after loading .env if one exists.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if config.IsProduction() && config.Session.Secret == developmentSecret {
		return nil, ErrInsecureSecret
	}
	switch config.Store.Driver {
	case "sqlite", "redis":
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, config.Store.Driver)
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StoreOptions maps the store settings onto storage.Open.
func (c *Config) StoreOptions() storage.Options {
	return storage.Options{
		Driver:        c.Store.Driver,
		DBPath:        c.Store.DBPath,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		EntryTTL:      c.Session.MaxAge,
	}
}
