// Package config loads the application configuration from a YAML file and
// fills in defaults so a minimal config file still produces a runnable app.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spear-lab/spearchat/pkg/guard"
	"github.com/spear-lab/spearchat/pkg/mcp"
)

// Config is the top-level application configuration.
type Config struct {
	Model      ModelConfig      `yaml:"model"`
	DataServer mcp.ServerConfig `yaml:"data_server"`
	Guard      GuardConfig      `yaml:"guard"`
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
	Chat       ChatConfig       `yaml:"chat"`
}

// ModelConfig configures the Anthropic client.
type ModelConfig struct {
	Name        string   `yaml:"name"`
	APIKeyEnv   string   `yaml:"api_key_env"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

// GuardConfig exposes the guard tunables an operator is likely to adjust.
// Zero values mean "use the default calibration".
type GuardConfig struct {
	SafeTokenThreshold     int `yaml:"safe_token_threshold"`
	ReservedResponseTokens int `yaml:"reserved_response_tokens"`
	MetadataOverheadBytes  int `yaml:"metadata_overhead_bytes"`
}

// KnowledgeConfig configures the local knowledge base.
type KnowledgeConfig struct {
	Dir      string `yaml:"dir"`
	Watch    bool   `yaml:"watch"`
	UseCache *bool  `yaml:"use_cache"`
}

// ChatConfig configures the WebSocket chat server.
type ChatConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Model.Name == "" {
		c.Model.Name = "claude-sonnet-4-20250514"
	}
	if c.Model.APIKeyEnv == "" {
		c.Model.APIKeyEnv = "ANTHROPIC_API_KEY"
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = 8192
	}
	if c.DataServer.Type == "" {
		c.DataServer.Type = "stdio"
	}
	if c.Chat.ListenAddr == "" {
		c.Chat.ListenAddr = "localhost:8080"
	}
	if c.Knowledge.UseCache == nil {
		t := true
		c.Knowledge.UseCache = &t
	}
}

func (c *Config) validate() error {
	switch c.DataServer.Type {
	case "stdio":
		if c.DataServer.Command == "" {
			return fmt.Errorf("data_server: command is required for stdio transport")
		}
	case "http":
		if c.DataServer.URL == "" {
			return fmt.Errorf("data_server: url is required for http transport")
		}
	default:
		return fmt.Errorf("data_server: unknown transport type %q", c.DataServer.Type)
	}
	if c.Guard.SafeTokenThreshold < 0 || c.Guard.ReservedResponseTokens < 0 {
		return fmt.Errorf("guard: token budgets must not be negative")
	}
	return nil
}

// APIKey resolves the Anthropic API key from the configured environment
// variable.
func (c *Config) APIKey() (string, error) {
	if v := os.Getenv(c.Model.APIKeyEnv); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("no API key: set %s", c.Model.APIKeyEnv)
}

// GuardSettings maps the operator overrides onto the full guard calibration.
func (c *Config) GuardSettings() guard.Config {
	gc := guard.DefaultConfig()
	if c.Guard.SafeTokenThreshold > 0 {
		gc.SafeTokenThreshold = c.Guard.SafeTokenThreshold
	}
	if c.Guard.ReservedResponseTokens > 0 {
		gc.ReservedResponseTokens = c.Guard.ReservedResponseTokens
	}
	if c.Guard.MetadataOverheadBytes > 0 {
		gc.MetadataOverheadBytes = c.Guard.MetadataOverheadBytes
	}
	return gc
}
