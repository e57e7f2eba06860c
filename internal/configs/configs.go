package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	AppHost                 string `yaml:"app_host" env:"APP_HOST" env-default:"127.0.0.1"`
	AppPort                 string `yaml:"app_port" env:"APP_PORT" env-default:"8080"`
	DBDriver                string `yaml:"db_driver" env:"DB_DRIVER" env-default:"sqlite"`
	DatabaseDSN             string `yaml:"database_dsn" env:"DATABASE_DSN" env-default:"marketplace.db"`
	RedisEnabled            bool   `yaml:"redis_enabled" env:"REDIS_ENABLED" env-default:"false"`
	RedisHost               string `yaml:"redis_host" env:"REDIS_HOST" env-default:"127.0.0.1"`
	RedisPort               string `yaml:"redis_port" env:"REDIS_PORT" env-default:"6379"`
	RedisNotificationPrefix string `yaml:"redis_notification_prefix" env:"REDIS_NOTIFICATION_PREFIX" env-default:"notifications"`
	NotifyWorkers           int    `yaml:"notify_workers" env:"NOTIFY_WORKERS" env-default:"4"`
	NotifyQueueSize         int    `yaml:"notify_queue_size" env:"NOTIFY_QUEUE_SIZE" env-default:"256"`
	RateLimit               int    `yaml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`
	ShutdownTimeoutSeconds  int    `yaml:"shutdown_timeout_seconds" env:"SHUTDOWN_TIMEOUT_SECONDS" env-default:"20"`
	LogLevel                string `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	ModeratorsChannel       string `yaml:"moderators_channel" env:"MODERATORS_CHANNEL" env-default:"moderators"`
}

func (c Config) AppURL() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// Load reads configPath when it exists and falls back to the environment.
func Load(configPath string) Config {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
	} else if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			log.Fatalf("cannot read config %q: %s", configPath, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
	}

	if err := validate(cfg); err != nil {
		log.Fatal(err)
	}
	return cfg
}

func validate(cfg Config) error {
	if cfg.AppHost == "" || cfg.AppPort == "" {
		return errors.New("APP_HOST and APP_PORT must not be empty")
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.NotifyWorkers <= 0 {
		return errors.New("NOTIFY_WORKERS must be greater than 0")
	}
	if cfg.NotifyQueueSize <= 0 {
		return errors.New("NOTIFY_QUEUE_SIZE must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}
