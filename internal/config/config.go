// Package config loads the design parameters and runtime settings of the
// vawt command.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/soypat/vawt/turbine"
)

// Config holds the turbine design and the settings read from the environment.
type Config struct {
	Params turbine.Params

	LogLevel  string
	LogFormat string
	OutputDir string
}

// Load reads design parameters from the TOML file at path on top of
// turbine.DefaultParams. An empty path uses the defaults unchanged.
// Runtime settings come from environment variables, applying defaults where unset.
func Load(path string) (*Config, error) {
	params := turbine.DefaultParams()
	if path != "" {
		md, err := toml.DecodeFile(path, &params)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Params:    params,
		LogLevel:  envOrDefault("VAWT_LOG_LEVEL", "info"),
		LogFormat: envOrDefault("VAWT_LOG_FORMAT", "text"),
		OutputDir: envOrDefault("VAWT_OUTPUT_DIR", "."),
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid VAWT_LOG_FORMAT %q", cfg.LogFormat)
	}
	return cfg, nil
}

// NewLogger returns a logger writing to w with the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if c.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid VAWT_LOG_LEVEL %q", s)
	}
	return level, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
