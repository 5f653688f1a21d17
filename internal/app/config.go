package app

import "time"

// Config holds runtime configuration for the service. It is assembled once
// in main from flags, environment, and an optional config file, then passed
// down; nothing reads globals after startup.
type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string

	// UploadDir is where CV uploads and generated artifacts are stored.
	UploadDir string

	// Fetch
	UserAgent    string
	FetchTimeout time.Duration

	// Bulk search aggregation. An empty URL leaves the capability
	// unavailable.
	AggregatorURL     string
	AggregatorCountry string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	Verbose bool
}

// ApplyDefaults fills unset fields with working defaults.
func (c *Config) ApplyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.AggregatorCountry == "" {
		c.AggregatorCountry = "USA"
	}
	if c.LLMModel == "" {
		c.LLMModel = "gpt-4o-mini"
	}
}
