// Package config loads the arranger configuration file.
//
// The file is TOML and every key is optional:
//
//	[layout]
//	item_avoidance = true
//	join_avoidance = true
//	margin = 20
//	padding = 10
//
//	[cache]
//	backend = "file"   # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "info"
//	file = ""
//
// Command-line flags override file values.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/arranger/pkg/cache"
	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/pipeline"
	"github.com/matzehuels/arranger/pkg/server"
)

const appName = "arranger"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Layout Layout `toml:"layout"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Layout holds pass defaults.
type Layout struct {
	ItemAvoidance bool    `toml:"item_avoidance"`
	JoinAvoidance bool    `toml:"join_avoidance"`
	Margin        float64 `toml:"margin"`
	Padding       float64 `toml:"padding"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	TTL       Duration `toml:"ttl"`
}

// Server configures `arranger serve`.
type Server struct {
	Addr    string   `toml:"addr"`
	Timeout Duration `toml:"timeout"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration decodes TOML strings such as "24h" or "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Layout: Layout{
			ItemAvoidance: true,
			JoinAvoidance: true,
			Margin:        pipeline.DefaultMargin,
			Padding:       pipeline.DefaultPadding,
		},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{cache.DefaultTTL},
		},
		Server: Server{
			Addr:    server.DefaultAddr,
			Timeout: Duration{server.DefaultTimeout},
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/arranger/config.toml, falling back to
// ~/.config/arranger/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path on top of the defaults. An empty path selects
// [DefaultPath], and a missing default file yields the defaults. A missing
// explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Layout.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.margin must be non-negative, got %v", c.Layout.Margin)
	}
	if c.Layout.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.padding must be non-negative, got %v", c.Layout.Padding)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of: file, redis, none (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must be non-negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// Options converts the layout section to pass options.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		ItemAvoidance: c.Layout.ItemAvoidance,
		JoinAvoidance: c.Layout.JoinAvoidance,
		Margin:        c.Layout.Margin,
		Padding:       c.Layout.Padding,
	}
}

// LogLevel returns the parsed log level. Call after Validate.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
