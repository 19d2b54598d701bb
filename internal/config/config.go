// Package config loads bincheck settings from an optional .env file, an
// optional YAML file and BINCHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BINCHECK_LOOKUP_BASE_URL.
const EnvPrefix = "BINCHECK"

// DefaultBaseURL is the public lookup service.
const DefaultBaseURL = "https://binlist.io"

// Config is the full application configuration.
type Config struct {
	Lookup LookupConfig `mapstructure:"lookup"`
	Log    LogConfig    `mapstructure:"log"`
	Web    WebConfig    `mapstructure:"web"`
	Stub   StubConfig   `mapstructure:"stub"`
	Trace  TraceConfig  `mapstructure:"trace"`
}

// LookupConfig points the client at the lookup service.
type LookupConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`   // empty = stderr (web/stub), discard (tui)
}

type WebConfig struct {
	Addr string `mapstructure:"addr"`
}

type StubConfig struct {
	Addr     string `mapstructure:"addr"`
	Fixtures string `mapstructure:"fixtures"`
}

type TraceConfig struct {
	ServiceName string `mapstructure:"service_name"`
}

// Load reads configuration. path may be empty, in which case bincheck.yaml is
// searched for in the working directory and $HOME/.config/bincheck; a missing
// file is not an error. An explicit path that does not exist is.
func Load(path string) (*Config, error) {
	// .env only seeds the process environment; real env vars win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("bincheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "bincheck"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Lookup.BaseURL = strings.TrimRight(cfg.Lookup.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Lookup: LookupConfig{BaseURL: DefaultBaseURL, Timeout: 10 * time.Second},
		Log:    LogConfig{Level: "info", Format: "console"},
		Web:    WebConfig{Addr: ":8080"},
		Stub:   StubConfig{Addr: ":9090"},
		Trace:  TraceConfig{ServiceName: "bincheck"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("lookup.base_url", d.Lookup.BaseURL)
	v.SetDefault("lookup.timeout", d.Lookup.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", "")
	v.SetDefault("web.addr", d.Web.Addr)
	v.SetDefault("stub.addr", d.Stub.Addr)
	v.SetDefault("stub.fixtures", "")
	v.SetDefault("trace.service_name", d.Trace.ServiceName)
}

// Validate checks the fields that would otherwise fail late, at first lookup.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Lookup.BaseURL)
	if err != nil {
		return fmt.Errorf("lookup.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("lookup.base_url %q: must be an absolute http(s) URL", c.Lookup.BaseURL)
	}
	if c.Lookup.Timeout < 0 {
		return fmt.Errorf("lookup.timeout must not be negative, got %s", c.Lookup.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q: want console or json", c.Log.Format)
	}
	return nil
}
