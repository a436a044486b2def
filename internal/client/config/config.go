package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds runtime settings for the course manager.
//
// Fields:
//   - DBPath: SQLite database file backing the local store.
//   - LogLevel, LogFormat: logger setup (see logging.New).
//   - SaveTimeout: upper bound for one background collection write.
//   - MaxImageDimension: attached images larger than this (px, either side)
//     are downsized; 0 keeps the original size.
//   - Locale: BCP 47 tag used for case folding and alphabetical sorting.
//   - AdminEmail, AdminUsername, AdminPassword: bootstrap administrator
//     created on first start when no user with AdminEmail exists.
type Config struct {
	DBPath            string        `env:"DB_PATH"`
	LogLevel          string        `env:"LOG_LEVEL"`
	LogFormat         string        `env:"LOG_FORMAT"`
	SaveTimeout       time.Duration `env:"SAVE_TIMEOUT"`
	MaxImageDimension int           `env:"MAX_IMAGE_DIMENSION"`
	Locale            string        `env:"LOCALE"`
	AdminEmail        string        `env:"ADMIN_EMAIL"`
	AdminUsername     string        `env:"ADMIN_USERNAME"`
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "./coursemanager.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.SaveTimeout = 5 * time.Second
	c.MaxImageDimension = 1600
	c.Locale = "fa"
	c.AdminEmail = "admin@coursemanager.local"
	c.AdminUsername = "Admin"
	c.AdminPassword = "admin"
}

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db path must not be empty"))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q", c.LogFormat))
	}
	if c.SaveTimeout <= 0 {
		errs = append(errs, fmt.Errorf("save timeout must be positive, got %s", c.SaveTimeout))
	}
	if c.MaxImageDimension < 0 {
		errs = append(errs, fmt.Errorf("max image dimension must not be negative, got %d", c.MaxImageDimension))
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		errs = append(errs, errors.New("admin email and password must not be empty"))
	}
	return errors.Join(errs...)
}

// Load constructs a Config, applies defaults, then overlays values from the
// config file named by fl (if any), the environment (including a .env file in
// the working directory) and explicitly set flags. Later sources take
// precedence over earlier ones.
func Load(fl *Flags) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return load(fl, nil)
}

func load(fl *Flags, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if fl != nil && fl.ConfigFile != "" {
		if err := parseFile(cfg, fl.ConfigFile); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if fl != nil {
		fl.apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
