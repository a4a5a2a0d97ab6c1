package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DefaultProject string            `yaml:"default_project,omitempty"`
	ActiveGroup    string            `yaml:"active_group,omitempty"`
	UserName       string            `yaml:"user_name,omitempty"`
	ReplyDelay     time.Duration     `yaml:"reply_delay,omitempty"`
	Greetings      map[string]string `yaml:"greetings,omitempty"`
}

// Delay returns the configured assistant reply delay, or fallback when unset.
func (c *Config) Delay(fallback time.Duration) time.Duration {
	if c.ReplyDelay <= 0 {
		return fallback
	}
	return c.ReplyDelay
}

func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, "config.yaml")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
