// Package config loads the service configuration for the synthscan server.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkrasov/synthscan"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Analyzer struct {
		// EnableOCR turns on the tesseract OCR engine. Off by default:
		// the pipeline degrades to an empty OCR signal without it.
		EnableOCR bool `yaml:"enableOCR"`

		// Optional scoring overrides. Zero means "keep the default".
		// The defaults are uncalibrated heuristics; override at your own risk.
		BaseScore          float64 `yaml:"baseScore"`
		SyntheticThreshold float64 `yaml:"syntheticThreshold"`
	} `yaml:"analyzer"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.AllowedOrigins = []string{"*"}
	return cfg
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Rules builds the scoring rule set with any configured overrides applied.
func (c *Config) Rules() *synthscan.Rules {
	rules := synthscan.DefaultRules()
	if c.Analyzer.BaseScore > 0 {
		rules.Base = c.Analyzer.BaseScore
	}
	if c.Analyzer.SyntheticThreshold > 0 {
		rules.SyntheticThreshold = c.Analyzer.SyntheticThreshold
	}
	return rules
}
