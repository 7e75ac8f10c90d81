// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives the demo host. Everything has a sensible default, so a
// config file is optional.
type Config struct {
	// OutputRate the audio device runs at, in Hz.
	OutputRate float64 `yaml:"output_rate"`
	// BlockFrames rendered per callback iteration.
	BlockFrames int `yaml:"block_frames"`
	// Mono downmixes the file before playback.
	Mono bool `yaml:"mono"`
	// Gain in [0,1].
	Gain float32 `yaml:"gain"`

	Bridge BridgeConfig `yaml:"bridge"`
}

// BridgeConfig selects the transport sync mode.
type BridgeConfig struct {
	// Mode is "none", "master" or "broadcast".
	Mode string `yaml:"mode"`
	// Addr is the UDP follower address (host:port) for broadcast mode.
	Addr string `yaml:"addr"`
}

func defaultConfig() *Config {
	return &Config{
		OutputRate:  48000,
		BlockFrames: 512,
		Gain:        1.0,
		Bridge:      BridgeConfig{Mode: "none"},
	}
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OutputRate <= 0 {
		return fmt.Errorf("output_rate must be positive, got %v", c.OutputRate)
	}
	if c.BlockFrames <= 0 {
		return fmt.Errorf("block_frames must be positive, got %d", c.BlockFrames)
	}

	switch c.Bridge.Mode {
	case "", "none", "master":
	case "broadcast":
		if c.Bridge.Addr == "" {
			return fmt.Errorf("bridge mode %q needs an addr", c.Bridge.Mode)
		}
	default:
		return fmt.Errorf("unknown bridge mode %q", c.Bridge.Mode)
	}

	return nil
}
