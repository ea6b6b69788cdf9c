// Package config loads client configuration from file, environment and
// flags through viper.
package config

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds everything the client needs for one session.
type Config struct {
	ServerURL   string `mapstructure:"server_url"`
	ReadyURL    string `mapstructure:"ready_url"`
	Name        string `mapstructure:"name"`
	DebugListen string `mapstructure:"debug_listen"`
	LogLevel    string `mapstructure:"log_level"`
	NoInput     bool   `mapstructure:"no_input"`
	RaiseStep   int64  `mapstructure:"raise_step"`
}

// Default returns the local-development configuration.
func Default() Config {
	return Config{
		ServerURL: "ws://localhost:8000/ws",
		ReadyURL:  "http://localhost:8000/player-ready",
		LogLevel:  "info",
		RaiseStep: 5,
	}
}

// Load resolves the configuration: defaults, then an optional tableview.yaml
// (working directory or $HOME/.tableview), then TABLEVIEW_* environment
// variables, then whatever flags were bound to the viper instance.
func Load(v *viper.Viper) (Config, error) {
	def := Default()
	v.SetDefault("server_url", def.ServerURL)
	v.SetDefault("ready_url", def.ReadyURL)
	v.SetDefault("name", def.Name)
	v.SetDefault("debug_listen", def.DebugListen)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("no_input", def.NoInput)
	v.SetDefault("raise_step", def.RaiseStep)

	v.SetConfigName("tableview")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.tableview")
	v.SetEnvPrefix("TABLEVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	// Env vars arrive as strings; coerce the numeric knob explicitly.
	cfg.RaiseStep = cast.ToInt64(v.Get("raise_step"))
	if cfg.RaiseStep <= 0 {
		cfg.RaiseStep = def.RaiseStep
	}
	return cfg, nil
}
