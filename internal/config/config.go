// Package config assembles settings from flags, an optional YAML file and
// TARJETA_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "TARJETA_"

// Config holds the application settings.
type Config struct {
	DB        string `koanf:"db" validate:"required"`
	Addr      string `koanf:"addr" validate:"required"`
	LogLevel  string `koanf:"log-level" validate:"oneof=debug info warn error"`
	QuizOrder string `koanf:"quiz-order" validate:"oneof=random sequential"`
	ReposDir  string `koanf:"repos-dir" validate:"required"`
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewFlagSet defines the global flags. Flags stop at the first command word.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.String("config", "", "Path to a YAML config file")
	fs.String("db", "tarjeta.db", "Path to the SQLite database file")
	fs.String("addr", "127.0.0.1:8080", "Listen address for the serve command")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
	fs.String("quiz-order", "random", "Default quiz order: random or sequential")
	fs.String("repos-dir", "repos", "Where git sources are cloned by the import command")
	return fs
}

// Load parses args into fs and merges, lowest precedence first: flag
// defaults, the YAML file, the environment, then flags set explicitly.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	path, _ := fs.GetString("config")
	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// posflag only lets unchanged flag defaults fill keys nothing else set.
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKey maps TARJETA_LOG_LEVEL to log-level.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}
