// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/vcompress/pkg/orchestrator"
)

// Config represents the full file-based configuration for vcompress.
// Command-line flags override values loaded from a file.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	StreamPath string `yaml:"stream"`
	OutputPath string `yaml:"output"`

	// Codec
	Algorithm        string `yaml:"algorithm"`
	Quality          int    `yaml:"quality"`
	TargetBitrate    int    `yaml:"target_bitrate"`
	KeyFrameInterval int    `yaml:"key_frame_interval"`

	// Audio
	KeepAudio bool `yaml:"keep_audio"`

	// Housekeeping
	KeepTempFiles bool `yaml:"keep_temp_files"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		StreamPath:       "data.vcomp",
		Algorithm:        "bilinear",
		Quality:          75,
		TargetBitrate:    0,
		KeyFrameInterval: 30,
		KeepAudio:        true,
		KeepTempFiles:    false,
		DebugDir:         "./debug",
		LogLevel:         "info",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ToOrchestrator converts the file configuration into a session config.
func (c Config) ToOrchestrator() orchestrator.Config {
	return orchestrator.Config{
		InputPath:        c.InputPath,
		StreamPath:       c.StreamPath,
		OutputPath:       c.OutputPath,
		Algorithm:        c.Algorithm,
		Quality:          c.Quality,
		TargetBitrate:    c.TargetBitrate,
		KeyFrameInterval: c.KeyFrameInterval,
		KeepAudio:        c.KeepAudio,
		KeepTempFiles:    c.KeepTempFiles,
	}
}
