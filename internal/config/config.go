// Package config loads the YAML settings file and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/validation"
)

type Config struct {
	Timezone         string                     `yaml:"timezone" validate:"timezone"`
	GoalStreakOnMiss constants.GoalStreakPolicy `yaml:"goal_streak_on_miss" validate:"goalstreakpolicy"`
	Store            string                     `yaml:"store"`
	Debug            bool                       `yaml:"debug"`
	Generator        GeneratorConfig            `yaml:"generator"`
}

type GeneratorConfig struct {
	BaseURL           string        `yaml:"base_url" validate:"omitempty,url"`
	Model             string        `yaml:"model" validate:"required"`
	RequestsPerMinute int           `yaml:"requests_per_minute" validate:"gte=0,lte=600"`
	Timeout           time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Timezone:         constants.DefaultTimezone,
		GoalStreakOnMiss: constants.DefaultGoalStreakOnMiss,
		Store:            constants.DefaultStorePath,
		Generator: GeneratorConfig{
			BaseURL:           constants.DefaultGeneratorBaseURL,
			Model:             constants.DefaultGeneratorModel,
			RequestsPerMinute: constants.DefaultGeneratorRPM,
			Timeout:           constants.DefaultGeneratorTimeout,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	return validation.Struct(c)
}

// ApplyEnv overrides file values with BREAKFREE_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(constants.EnvStore); v != "" {
		c.Store = v
	}
	if v := getenv(constants.EnvTimezone); v != "" {
		c.Timezone = v
	}
}

// Keys lists every settable key in display order.
func Keys() []string {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of key.
func (c *Config) Get(key string) (string, error) {
	a, ok := accessors[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return a.get(c), nil
}

// Set parses value into key and validates the result. c is unchanged on error.
func (c *Config) Set(key, value string) error {
	a, ok := accessors[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	next := *c
	if err := a.set(&next, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

type accessor struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

var accessors = map[string]accessor{
	constants.SettingTimezone: {
		get: func(c *Config) string { return c.Timezone },
		set: func(c *Config, v string) error { c.Timezone = v; return nil },
	},
	constants.SettingGoalStreakOnMiss: {
		get: func(c *Config) string { return string(c.GoalStreakOnMiss) },
		set: func(c *Config, v string) error { c.GoalStreakOnMiss = constants.GoalStreakPolicy(v); return nil },
	},
	constants.SettingStore: {
		get: func(c *Config) string { return c.Store },
		set: func(c *Config, v string) error { c.Store = v; return nil },
	},
	constants.SettingDebug: {
		get: func(c *Config) string { return strconv.FormatBool(c.Debug) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			c.Debug = b
			return nil
		},
	},
	constants.SettingGeneratorBaseURL: {
		get: func(c *Config) string { return c.Generator.BaseURL },
		set: func(c *Config, v string) error { c.Generator.BaseURL = v; return nil },
	},
	constants.SettingGeneratorModel: {
		get: func(c *Config) string { return c.Generator.Model },
		set: func(c *Config, v string) error { c.Generator.Model = v; return nil },
	},
	constants.SettingGeneratorRPM: {
		get: func(c *Config) string { return strconv.Itoa(c.Generator.RequestsPerMinute) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			c.Generator.RequestsPerMinute = n
			return nil
		},
	},
	constants.SettingGeneratorTimeout: {
		get: func(c *Config) string { return c.Generator.Timeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			c.Generator.Timeout = d
			return nil
		},
	},
}
