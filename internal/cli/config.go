package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultConfigFile is read when no --config flag is given
const DefaultConfigFile = ".dumbbrain.json"

// Config represents the configuration shared by all subcommands
type Config struct {
	Verbose bool `json:"verbose"`
	Debug   bool `json:"debug"`

	// REPL
	HistoryFile string `json:"history_file"`
	MaxHistory  int    `json:"max_history"`
	Prompt      string `json:"prompt"`
	ShowTokens  bool   `json:"show_tokens"`
	ShowTree    bool   `json:"show_tree"`

	// HTTP/3 service
	ServerAddr   string `json:"server_addr"`
	TLSCert      string `json:"tls_cert"`
	TLSKey       string `json:"tls_key"`
	MaxBodyBytes int64  `json:"max_body_bytes"`

	// Language is a semver constraint on the language version
	Language string `json:"language"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		HistoryFile:  ".dumbbrain_history",
		MaxHistory:   1000,
		Prompt:       ">> ",
		ServerAddr:   "127.0.0.1:8443",
		MaxBodyBytes: 64 << 10,
	}
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that JSON decoding alone cannot
func (c *Config) Validate() error {
	if c.MaxHistory < 0 {
		return fmt.Errorf("max_history must not be negative, got %d", c.MaxHistory)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("tls_cert and tls_key must be set together")
	}
	return CheckLanguage(c.Language)
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
