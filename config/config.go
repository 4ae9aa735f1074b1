// Package config loads the hub's settings from flags, MERCADO_* environment
// variables and defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "MERCADO"

// The hosted backend. Overridden per deployment; it hibernates when idle,
// which is why the request timeouts default so high.
const defaultBackendURL = "https://estoque-web-3513.onrender.com"

type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	BackendURL string `mapstructure:"backend_url"`

	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RetryAttempts  int           `mapstructure:"retry_attempts"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
	RetryMaxDelay  time.Duration `mapstructure:"retry_max_delay"`
	FreshWindow    time.Duration `mapstructure:"fresh_window"`

	SessionDir string `mapstructure:"session_dir"`
}

func Load() (Config, error) {
	return load(pflag.CommandLine, os.Args[1:])
}

func load(flags *pflag.FlagSet, args []string) (Config, error) {
	flags.String("listen-addr", ":8081", "address the hub listens on")
	flags.String("backend-url", defaultBackendURL, "base URL of the inventory backend")
	flags.Duration("request-timeout", 30*time.Second, "per-request deadline against the backend")
	flags.String("session-dir", defaultSessionDir(), "directory holding the persisted session")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("listen_addr", ":8081")
	v.SetDefault("backend_url", defaultBackendURL)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("retry_attempts", 3)
	v.SetDefault("retry_base_delay", time.Second)
	v.SetDefault("retry_max_delay", 30*time.Second)
	v.SetDefault("fresh_window", 5*time.Minute)
	v.SetDefault("session_dir", defaultSessionDir())

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	bind := map[string]string{
		"listen_addr":     "listen-addr",
		"backend_url":     "backend-url",
		"request_timeout": "request-timeout",
		"session_dir":     "session-dir",
	}
	for key, flag := range bind {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("backend URL must not be empty")
	}
	return cfg, nil
}

func defaultSessionDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "mini-mercado-hub")
}
