package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileConfig_And_Merge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobsift.yaml")
	body := `
listen: ":9090"
uploads: "/var/lib/jobsift/uploads"
fetch:
  userAgent: "custom-ua"
  timeout: 15s
aggregator:
  url: "http://aggregator:8000"
  country: "UK"
llm:
  base: "http://llm:8081/v1"
  model: "local-model"
  key: "secret"
verbose: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Flags already set win; unset fields come from the file.
	cfg := Config{ListenAddr: ":8080"}
	MergeFileConfig(&cfg, fc)

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("flag value must win, got %q", cfg.ListenAddr)
	}
	if cfg.UploadDir != "/var/lib/jobsift/uploads" {
		t.Fatalf("unexpected upload dir %q", cfg.UploadDir)
	}
	if cfg.UserAgent != "custom-ua" || cfg.FetchTimeout != 15*time.Second {
		t.Fatalf("unexpected fetch config %q %v", cfg.UserAgent, cfg.FetchTimeout)
	}
	if cfg.AggregatorURL != "http://aggregator:8000" || cfg.AggregatorCountry != "UK" {
		t.Fatalf("unexpected aggregator config %+v", cfg)
	}
	if cfg.LLMBaseURL != "http://llm:8081/v1" || cfg.LLMModel != "local-model" || cfg.LLMAPIKey != "secret" {
		t.Fatalf("unexpected llm config %+v", cfg)
	}
	if !cfg.Verbose {
		t.Fatalf("expected verbose from file")
	}
}

func TestLoadFileConfig_MissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.ListenAddr == "" || cfg.UploadDir == "" || cfg.FetchTimeout <= 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
