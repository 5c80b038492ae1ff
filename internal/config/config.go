// Package config provides YAML-based application settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	asetimage "aset-analyzer/internal/image"
	"aset-analyzer/internal/report"

	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// DefaultAddr is the listen address of the web form.
const DefaultAddr = "127.0.0.1:5110"

// Config holds settings shared by the CLI and the web form.
type Config struct {
	Workers    int           `yaml:"workers"`     // Concurrent images; 0 means one per CPU
	Timeout    time.Duration `yaml:"timeout"`     // Per-image limit; 0 disables it
	Extensions []string      `yaml:"extensions"`  // File extensions picked up by a folder scan
	ReportName string        `yaml:"report_name"` // Spreadsheet file name in the destination folder
	Render     bool          `yaml:"render"`      // Write the diagnostic figure per image
	Addr       string        `yaml:"addr"`        // Web form listen address
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Workers:    runtime.NumCPU(),
		Extensions: asetimage.DefaultExtensions(),
		ReportName: report.DefaultName,
		Render:     true,
		Addr:       DefaultAddr,
	}
}

// DefaultPath returns ~/.config/aset-analyzer/config.yaml (or the platform equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "aset-analyzer", configFile)
}

// Load reads settings from path, or DefaultPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg.Normalize()
}

// Normalize validates c and fills derived defaults.
func (c Config) Normalize() (Config, error) {
	if c.Workers < 0 {
		return c, fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Timeout < 0 {
		return c, fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if len(c.Extensions) == 0 {
		c.Extensions = asetimage.DefaultExtensions()
	}
	exts := make([]string, 0, len(c.Extensions))
	for _, e := range c.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	c.Extensions = exts
	if c.ReportName == "" {
		c.ReportName = report.DefaultName
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	return c, nil
}
