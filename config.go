package llmbattle

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tokyo is the single fixed reporting timezone. Week windows, trading days and
// "today" are all resolved in JST before any date string is produced.
var Tokyo = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err.Error())
	}
	return loc
}

// ModelConfig declares one LLM backend taking part in the contest.
type ModelConfig struct {
	// Name is the contest-facing label ("gpt", "claude", ...) used as the
	// model key in picks and results.
	Name string `yaml:"name"`
	// Provider selects the client implementation: "openai", "azure-openai",
	// "gemini", "claude" or "grok".
	Provider string `yaml:"provider"`
	// Model is the provider-side model identifier.
	Model string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the credential.
	APIKeyEnv string `yaml:"api_key_env"`
	// Endpoint overrides the provider's default base URL (required for
	// azure-openai).
	Endpoint string `yaml:"endpoint"`
}

// Config holds the application configuration, read from a YAML file with
// environment variable overrides.
type Config struct {
	DataDir    string `yaml:"data_dir"`
	ReportsDir string `yaml:"reports_dir"`
	// Provider selects the price source: "yahoo" (default) or "eodhd".
	Provider string        `yaml:"price_provider"`
	MaxPicks int           `yaml:"max_picks"`
	Universe []string      `yaml:"universe"`
	Models   []ModelConfig `yaml:"models"`
	Schedule struct {
		Predict   string `yaml:"predict_cron"`
		Fetch     string `yaml:"fetch_cron"`
		Aggregate string `yaml:"aggregate_cron"`
	} `yaml:"schedule"`
	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads the config from a YAML file, then applies environment
// variable overrides and defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	// Environment variable overrides.
	if v := os.Getenv("LTB_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("LTB_REPORTS_DIR"); v != "" {
		cfg.ReportsDir = v
	}
	if v := os.Getenv("LTB_PRICE_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("LTB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults.
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.ReportsDir == "" {
		cfg.ReportsDir = "reports"
	}
	if cfg.Provider == "" {
		cfg.Provider = "yahoo"
	}
	if cfg.MaxPicks == 0 {
		cfg.MaxPicks = MaxPicks
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if len(cfg.Models) == 0 {
		cfg.Models = DefaultModels()
	}
	if cfg.Schedule.Predict == "" {
		cfg.Schedule.Predict = "0 9 * * SUN" // Sunday morning JST
	}
	if cfg.Schedule.Fetch == "" {
		cfg.Schedule.Fetch = "10 9 * * MON-FRI" // shortly after the open
	}
	if cfg.Schedule.Aggregate == "" {
		cfg.Schedule.Aggregate = "30 15 * * MON-FRI" // after the close
	}
	return cfg, nil
}

// DefaultModels returns the four canonical contest entrants.
func DefaultModels() []ModelConfig {
	return []ModelConfig{
		{Name: "gpt", Provider: "azure-openai", Model: "gpt-4o", APIKeyEnv: "AZURE_OPENAI_API_KEY", Endpoint: os.Getenv("AZURE_OPENAI_ENDPOINT")},
		{Name: "gemini", Provider: "gemini", Model: "gemini-2.0-flash", APIKeyEnv: "GEMINI_API_KEY"},
		{Name: "claude", Provider: "claude", Model: "claude-3-5-sonnet-20241022", APIKeyEnv: "ANTHROPIC_API_KEY"},
		{Name: "grok", Provider: "grok", Model: "grok-2-latest", APIKeyEnv: "XAI_API_KEY"},
	}
}
