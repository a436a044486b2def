// Package config loads runtime configuration for the course manager CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via --config / -c.
//  3. COURSEMGR_* environment variables; a .env file in the working
//     directory is loaded first when present.
//  4. Command-line flags, applied only when explicitly set.
//
// Supported flags
//
//	--db string             path to the SQLite database file
//	--log-level string      debug, info, warn or error
//	--log-format string     text (slog) or json (zap)
//	--save-timeout duration timeout for one background save
//	--max-image-dim int     downsize attached images above this size
//	--locale string         locale for search and sorting
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "db_path": "./coursemanager.db",
//	  "log_level": "info",
//	  "save_timeout": "5s",
//	  "admin_email": "admin@coursemanager.local"
//	}
//
// Primary API
//
//   - type Config                          holds all settings
//   - func RegisterFlags(*pflag.FlagSet)   registers flags, returns *Flags
//   - func Load(*Flags) (*Config, error)   applies all sources and validates
package config
