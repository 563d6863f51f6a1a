// Package config provides configuration loading for the budget extraction
// tools.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Config is the full tool configuration.
type Config struct {
	GenAI  GenAIConfig  `koanf:"genai"`
	Inputs InputsConfig `koanf:"inputs"`
	Output OutputConfig `koanf:"output"`
	Log    LogConfig    `koanf:"log"`
}

// GenAIConfig configures the enrichment model calls. APIKey is threaded into
// the extractor explicitly rather than read from the environment at the call
// site.
type GenAIConfig struct {
	APIKey       string        `koanf:"api_key"`
	Model        string        `koanf:"model"`
	RequestDelay time.Duration `koanf:"request_delay"`
}

// InputsConfig holds the fallback input filenames used when the compare
// command is run without arguments.
type InputsConfig struct {
	EnactedPDF   string `koanf:"enacted_pdf"`
	ExecutivePDF string `koanf:"executive_pdf"`
}

// OutputConfig controls where result files land.
type OutputConfig struct {
	Dir string `koanf:"dir"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Defaults returns the built-in configuration. The API key default comes from
// GEMINI_API_KEY so existing environments keep working.
func Defaults() Config {
	return Config{
		GenAI: GenAIConfig{
			APIKey:       os.Getenv("GEMINI_API_KEY"),
			Model:        "gemini-2.5-flash",
			RequestDelay: 1500 * time.Millisecond,
		},
		Inputs: InputsConfig{
			EnactedPDF:   "2025 Enacted.pdf",
			ExecutivePDF: "2026 Executive.pdf",
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds configuration from (lowest to highest precedence) defaults, an
// optional YAML file, and BUDGET_-prefixed environment variables.
//
// Environment variables map section-first:
//
//	BUDGET_GENAI_API_KEY  -> genai.api_key
//	BUDGET_INPUTS_ENACTED_PDF -> inputs.enacted_pdf
//	BUDGET_LOG_LEVEL -> log.level
func Load(configPath string) (Config, error) {
	cfg := Defaults()
	k := koanf.New(".")

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", configPath, err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("BUDGET_", ".", func(s string) string {
		// BUDGET_GENAI_API_KEY -> genai.api_key: split section off at the
		// first underscore, keep the rest underscored.
		trimmed := strings.ToLower(strings.TrimPrefix(s, "BUDGET_"))
		parts := strings.SplitN(trimmed, "_", 2)
		if len(parts) == 1 {
			return trimmed
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment config: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
