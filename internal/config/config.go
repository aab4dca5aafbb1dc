// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package config holds the settings of the robdd server and command line
// tool. Values come from the defaults, then from an optional YAML file, then
// from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dalzilio/robdd/internal/cache"
	"github.com/dalzilio/robdd/internal/kernel"
	"github.com/dalzilio/robdd/internal/order"
)

// EnvAddr overrides the listen address of the server.
const EnvAddr = "ROBDD_ADDR"

// Config is the root of the configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
	Sift   SiftConfig   `yaml:"sift"`
	Kernel KernelConfig `yaml:"kernel"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: debug, release or test
}

// CacheConfig configures the formula cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

// SiftConfig bounds the sifting runs. A zero MaxPasses means no bound.
type SiftConfig struct {
	MaxPasses int `yaml:"max_passes"`
}

// KernelConfig sizes the kernel of the simplifier of each formula. Zero
// values keep the kernel defaults.
type KernelConfig struct {
	Nodesize    int `yaml:"nodesize"`
	Maxnodesize int `yaml:"maxnodesize"` // bound on the node table of one formula
	Cachesize   int `yaml:"cachesize"`
	Cacheratio  int `yaml:"cacheratio"` // cache entries per 100 nodes
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8000", Mode: "release"},
		Cache:  CacheConfig{Capacity: cache.DefaultCapacity},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over the defaults. An empty path only
// applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if c.Cache.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("cache.capacity must be positive, got %d", c.Cache.Capacity))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if c.Sift.MaxPasses < 0 {
		errs = append(errs, fmt.Errorf("sift.max_passes must not be negative, got %d", c.Sift.MaxPasses))
	}
	if c.Kernel.Nodesize < 0 || c.Kernel.Maxnodesize < 0 || c.Kernel.Cachesize < 0 || c.Kernel.Cacheratio < 0 {
		errs = append(errs, errors.New("kernel sizes must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Options returns the kernel options matching c.
func (c KernelConfig) Options() []kernel.Option {
	var res []kernel.Option
	if c.Nodesize > 0 {
		res = append(res, kernel.Nodesize(c.Nodesize))
	}
	if c.Maxnodesize > 0 {
		res = append(res, kernel.Maxnodesize(c.Maxnodesize))
	}
	if c.Cachesize > 0 {
		res = append(res, kernel.Cachesize(c.Cachesize))
	}
	if c.Cacheratio > 0 {
		res = append(res, kernel.Cacheratio(c.Cacheratio))
	}
	return res
}

// Options returns the sifting options matching c.
func (c SiftConfig) Options() []order.SiftOption {
	if c.MaxPasses > 0 {
		return []order.SiftOption{order.MaxPasses(c.MaxPasses)}
	}
	return nil
}
