package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally to flags and environment variables.
type FileConfig struct {
	Listen  string `yaml:"listen"`
	Uploads string `yaml:"uploads"`

	Fetch struct {
		UserAgent string `yaml:"userAgent"`
		// Timeout is a duration string like "15s"; yaml.v3 has no native
		// duration decoding.
		Timeout string `yaml:"timeout"`
	} `yaml:"fetch"`

	Aggregator struct {
		URL     string `yaml:"url"`
		Country string `yaml:"country"`
	} `yaml:"aggregator"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Verbose bool `yaml:"verbose"`
}

// LoadFileConfig reads a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

// MergeFileConfig fills cfg fields that are still unset. Flags and
// environment take precedence over the file.
func MergeFileConfig(cfg *Config, fc FileConfig) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fc.Listen
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = fc.Uploads
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout <= 0 && fc.Fetch.Timeout != "" {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if cfg.AggregatorURL == "" {
		cfg.AggregatorURL = fc.Aggregator.URL
	}
	if cfg.AggregatorCountry == "" {
		cfg.AggregatorCountry = fc.Aggregator.Country
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
