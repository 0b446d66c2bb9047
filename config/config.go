package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Broker   BrokerConfig   `json:"broker" yaml:"broker"`
	Quote    QuoteConfig    `json:"quote" yaml:"quote"`
	Research ResearchConfig `json:"research" yaml:"research"`
	LLM      LLMConfig      `json:"llm" yaml:"llm"`
}

// BrokerConfig covers the paper account and its storage.
type BrokerConfig struct {
	DBPath   string `json:"db_path" yaml:"db_path"`
	Currency string `json:"currency" yaml:"currency"`
}

// QuoteConfig selects quote providers and bounds lookups.
type QuoteConfig struct {
	// Providers are tried in order: "yahoo", "sina".
	Providers []string `json:"providers" yaml:"providers"`
	Timeout   string   `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "10s"
}

// ParseTimeout converts the timeout string to a duration, defaulting to
// ten seconds when unset.
func (q QuoteConfig) ParseTimeout() (time.Duration, error) {
	if q.Timeout == "" {
		return 10 * time.Second, nil
	}
	return time.ParseDuration(q.Timeout)
}

// ResearchConfig selects the search backend.
type ResearchConfig struct {
	Provider  string `json:"provider" yaml:"provider"` // "duckduckgo" or "serper"
	SerperKey string `json:"serper_key,omitempty" yaml:"serper_key,omitempty"`
}

// LLMConfig selects the advisory backend.
type LLMConfig struct {
	Provider string `json:"provider" yaml:"provider"` // "gemini", "ollama", or "none"
	Model    string `json:"model" yaml:"model"`
}

// LoadFromFile loads configuration from a file (YAML or JSON), applies
// environment overrides, and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// FromEnv returns the default configuration with environment overrides
// applied, for running without a config file.
func FromEnv() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BROKER_DB_PATH"); v != "" {
		c.Broker.DBPath = v
	}
	if v := os.Getenv("SEARCH_PROVIDER"); v != "" {
		c.Research.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("SERPER_API_KEY"); v != "" {
		c.Research.SerperKey = v
		c.Research.Provider = "serper"
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
}

// SaveToFile writes the configuration as YAML or JSON based on the
// file extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Broker.DBPath == "" {
		return fmt.Errorf("broker.db_path is required")
	}
	if c.Broker.Currency == "" {
		return fmt.Errorf("broker.currency is required")
	}
	if len(c.Quote.Providers) == 0 {
		return fmt.Errorf("quote.providers must name at least one provider")
	}
	for _, p := range c.Quote.Providers {
		if p != "yahoo" && p != "sina" {
			return fmt.Errorf("unknown quote provider: %s", p)
		}
	}
	if _, err := c.Quote.ParseTimeout(); err != nil {
		return fmt.Errorf("quote.timeout: %w", err)
	}
	switch c.Research.Provider {
	case "duckduckgo":
	case "serper":
		if c.Research.SerperKey == "" {
			return fmt.Errorf("research.serper_key required for serper provider")
		}
	default:
		return fmt.Errorf("research.provider must be 'duckduckgo' or 'serper'")
	}
	switch c.LLM.Provider {
	case "gemini", "ollama", "none":
	default:
		return fmt.Errorf("llm.provider must be 'gemini', 'ollama', or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Broker: BrokerConfig{
			DBPath:   "./aitrader.db",
			Currency: "CNY",
		},
		Quote: QuoteConfig{
			Providers: []string{"yahoo", "sina"},
			Timeout:   "10s",
		},
		Research: ResearchConfig{
			Provider: "duckduckgo",
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "qwen2.5:7b",
		},
	}
}
