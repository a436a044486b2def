package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/coursemanager/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used exclusively for file decoding. It relies on
// timex.Duration so files can specify the save timeout either as a string
// like "5s" or as integer nanoseconds. Keys missing from the file keep the
// values already present in Config.
type fileConfig struct {
	DBPath            string         `json:"db_path" yaml:"db_path"`
	LogLevel          string         `json:"log_level" yaml:"log_level"`
	LogFormat         string         `json:"log_format" yaml:"log_format"`
	SaveTimeout       timex.Duration `json:"save_timeout" yaml:"save_timeout"`
	MaxImageDimension int            `json:"max_image_dimension" yaml:"max_image_dimension"`
	Locale            string         `json:"locale" yaml:"locale"`
	AdminEmail        string         `json:"admin_email" yaml:"admin_email"`
	AdminUsername     string         `json:"admin_username" yaml:"admin_username"`
	AdminPassword     string         `json:"admin_password" yaml:"admin_password"`
}

func fromConfig(c *Config) fileConfig {
	return fileConfig{
		DBPath:            c.DBPath,
		LogLevel:          c.LogLevel,
		LogFormat:         c.LogFormat,
		SaveTimeout:       timex.Duration{Duration: c.SaveTimeout},
		MaxImageDimension: c.MaxImageDimension,
		Locale:            c.Locale,
		AdminEmail:        c.AdminEmail,
		AdminUsername:     c.AdminUsername,
		AdminPassword:     c.AdminPassword,
	}
}

func (fc fileConfig) copyTo(c *Config) {
	c.DBPath = fc.DBPath
	c.LogLevel = fc.LogLevel
	c.LogFormat = fc.LogFormat
	c.SaveTimeout = fc.SaveTimeout.Duration
	c.MaxImageDimension = fc.MaxImageDimension
	c.Locale = fc.Locale
	c.AdminEmail = fc.AdminEmail
	c.AdminUsername = fc.AdminUsername
	c.AdminPassword = fc.AdminPassword
}

// parseFile overlays cfg with values from a JSON or YAML file. The format is
// chosen by extension: .yaml and .yml are YAML, anything else is JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fc := fromConfig(cfg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.copyTo(cfg)
	return nil
}
