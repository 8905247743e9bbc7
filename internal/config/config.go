// Package config loads the origami settings file.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL      = "http://2016sv.icfpcontest.org/api/"
	DefaultProblemsDir = "icfp2016problems"
)

type Render struct {
	Scale   float64 `yaml:"scale"`
	Padding float64 `yaml:"padding"`
}

type Config struct {
	APIURL          string        `yaml:"api_url"`
	APIKey          string        `yaml:"api_key"`
	ProblemsDir     string        `yaml:"problems_dir"`
	MaxFolds        int           `yaml:"max_folds"`
	Exact           bool          `yaml:"exact"`
	LogLevel        string        `yaml:"log_level"`
	RequestInterval time.Duration `yaml:"request_interval"`
	Render          Render        `yaml:"render"`
}

func Default() Config {
	return Config{
		APIURL:          DefaultAPIURL,
		ProblemsDir:     DefaultProblemsDir,
		MaxFolds:        64,
		LogLevel:        "info",
		RequestInterval: time.Second,
		Render: Render{
			Scale:   600,
			Padding: 20,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default, and a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxFolds < 0 {
		return errors.Errorf("max_folds must not be negative, got %d", c.MaxFolds)
	}
	if c.RequestInterval < 0 {
		return errors.Errorf("request_interval must not be negative, got %v", c.RequestInterval)
	}
	if c.Render.Scale <= 0 {
		return errors.Errorf("render.scale must be positive, got %v", c.Render.Scale)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level is LogLevel as a slog level. Unknown names fall back to info.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, errors.Errorf("unknown log level %q", s)
	}
	return level, nil
}
