package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/stride/internal/workout"
)

type Config struct {
	DBPath   string     `yaml:"db_path"`
	LogLevel string     `yaml:"log_level"`
	Plan     PlanConfig `yaml:"plan"`
}

type PlanConfig struct {
	// StrengthChance is the probability of swapping an easy run for strength.
	StrengthChance *float64 `yaml:"strength_chance"`
	// Seed makes generated weeks reproducible when set.
	Seed *uint64 `yaml:"seed"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	chance := workout.DefaultStrengthChance
	return &Config{
		LogLevel: "info",
		Plan:     PlanConfig{StrengthChance: &chance},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. An empty path skips the file. Env vars:
//
//	STRIDE_DB, STRIDE_LOG_LEVEL, STRIDE_STRENGTH_CHANCE, STRIDE_SEED
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// DefaultPath returns $STRIDE_CONFIG, else $XDG_CONFIG_HOME/stride/config.yaml,
// else ~/.config/stride/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("STRIDE_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "stride", "config.yaml"), nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STRIDE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STRIDE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STRIDE_STRENGTH_CHANCE"); v != "" {
		chance, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("STRIDE_STRENGTH_CHANCE: %w", err)
		}
		cfg.Plan.StrengthChance = &chance
	}
	if v := os.Getenv("STRIDE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("STRIDE_SEED: %w", err)
		}
		cfg.Plan.Seed = &seed
	}
	return nil
}

func (c *Config) validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Plan.StrengthChance != nil {
		if p := *c.Plan.StrengthChance; p < 0 || p > 1 {
			return fmt.Errorf("plan.strength_chance must be within [0, 1], got %v", p)
		}
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// StrengthChance returns the configured chance or the default.
func (c *Config) StrengthChance() float64 {
	if c.Plan.StrengthChance == nil {
		return workout.DefaultStrengthChance
	}
	return *c.Plan.StrengthChance
}

func parseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, err)
	}
	return level, nil
}
