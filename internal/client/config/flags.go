package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides registered on a pflag.FlagSet. Only
// flags the user actually set are applied on top of file and environment
// values.
type Flags struct {
	fs         *pflag.FlagSet
	values     Config
	ConfigFile string
}

// RegisterFlags adds the configuration flags to fs, typically a cobra
// command's PersistentFlags.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	f.values.LoadDefaults()

	fs.StringVarP(&f.ConfigFile, "config", "c", "", "path to a JSON or YAML config file")
	fs.StringVar(&f.values.DBPath, "db", f.values.DBPath, "path to the SQLite database file")
	fs.StringVar(&f.values.LogLevel, "log-level", f.values.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&f.values.LogFormat, "log-format", f.values.LogFormat, "log format (text, json)")
	fs.DurationVar(&f.values.SaveTimeout, "save-timeout", f.values.SaveTimeout, "timeout for one background save")
	fs.IntVar(&f.values.MaxImageDimension, "max-image-dim", f.values.MaxImageDimension, "downsize attached images larger than this many pixels (0 disables)")
	fs.StringVar(&f.values.Locale, "locale", f.values.Locale, "locale used for search and sorting")

	return f
}

func (f *Flags) apply(cfg *Config) {
	if f.fs == nil {
		return
	}
	set := func(name string, fn func()) {
		if f.fs.Changed(name) {
			fn()
		}
	}
	set("db", func() { cfg.DBPath = f.values.DBPath })
	set("log-level", func() { cfg.LogLevel = f.values.LogLevel })
	set("log-format", func() { cfg.LogFormat = f.values.LogFormat })
	set("save-timeout", func() { cfg.SaveTimeout = f.values.SaveTimeout })
	set("max-image-dim", func() { cfg.MaxImageDimension = f.values.MaxImageDimension })
	set("locale", func() { cfg.Locale = f.values.Locale })
}
