// config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Scheduler SchedulerConfig
	Words     WordsConfig
	R2        R2Config
}

type ServerConfig struct {
	Port           string   `env:"PORT" envDefault:"5200"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	BodyLimitBytes int      `env:"BODY_LIMIT_BYTES" envDefault:"1048576"`
	// ServiceToken guards the admin routes; empty disables them.
	ServiceToken string `env:"GAME_SERVICE_TOKEN"`
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"postgres"`
	URL    string `env:"DATABASE_URL"`
	// SQLitePath is used when Driver is sqlite and DATABASE_URL is empty.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/wordle.db"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.URL == "" && d.Driver == "sqlite" {
		return d.SQLitePath
	}
	return d.URL
}

type SchedulerConfig struct {
	Enabled       bool          `env:"SCHEDULER_ENABLED" envDefault:"true"`
	Interval      time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"1h"`
	LookaheadDays int           `env:"SCHEDULER_LOOKAHEAD_DAYS" envDefault:"7"`
	RunOnStart    bool          `env:"SCHEDULER_RUN_ON_START" envDefault:"true"`
}

// Lookahead is how far ahead series and answers are generated.
func (s SchedulerConfig) Lookahead() time.Duration {
	return time.Duration(s.LookaheadDays) * 24 * time.Hour
}

type WordsConfig struct {
	// Path is a local .txt or .xlsx word list.
	Path string `env:"WORDS_PATH" envDefault:"data/words.txt"`
	// R2Key, when set, loads the list from the R2 bucket instead and keeps it in sync.
	R2Key           string        `env:"WORDS_R2_KEY"`
	RefreshInterval time.Duration `env:"WORDS_REFRESH_INTERVAL" envDefault:"15m"`
}

type R2Config struct {
	AccountID       string `env:"R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	Bucket          string `env:"R2_BUCKET_NAME"`
	// Endpoint overrides the account endpoint, e.g. for a local S3 stand-in.
	Endpoint string `env:"R2_ENDPOINT"`
}

// EndpointURL returns the S3 API endpoint of the account.
func (r R2Config) EndpointURL() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.AccountID)
}

// Load reads .env (if present) and the environment, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Server.BodyLimitBytes <= 0 {
		errs = append(errs, errors.New("BODY_LIMIT_BYTES must be positive"))
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case "sqlite":
		if c.Database.DSN() == "" {
			errs = append(errs, errors.New("SQLITE_PATH or DATABASE_URL is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be 'postgres' or 'sqlite', got '%s'", c.Database.Driver))
	}

	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		errs = append(errs, errors.New("SCHEDULER_INTERVAL must be positive"))
	}
	if c.Scheduler.LookaheadDays <= 0 {
		errs = append(errs, errors.New("SCHEDULER_LOOKAHEAD_DAYS must be positive"))
	}

	if c.Words.R2Key == "" && c.Words.Path == "" {
		errs = append(errs, errors.New("one of WORDS_PATH or WORDS_R2_KEY is required"))
	}
	if c.Words.R2Key != "" {
		if c.R2.Bucket == "" {
			errs = append(errs, errors.New("R2_BUCKET_NAME is required when WORDS_R2_KEY is set"))
		}
		if c.R2.AccountID == "" && c.R2.Endpoint == "" {
			errs = append(errs, errors.New("R2_ACCOUNT_ID or R2_ENDPOINT is required when WORDS_R2_KEY is set"))
		}
		if c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" {
			errs = append(errs, errors.New("R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY are required when WORDS_R2_KEY is set"))
		}
		if c.Words.RefreshInterval <= 0 {
			errs = append(errs, errors.New("WORDS_REFRESH_INTERVAL must be positive"))
		}
	}

	return errors.Join(errs...)
}
