package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/topodaily/config"
	ConfigFileName    = "topodaily.yml"
)

// Config holds all topodaily configuration settings.
type Config struct {
	// ReferenceFile is the spreadsheet of region/commune/village triples
	ReferenceFile string `yaml:"reference_file" json:"reference_file"`

	// SessionTokenTTL is the lifetime of session tokens in minutes
	SessionTokenTTL int `yaml:"session_token_ttl" json:"session_token_ttl"`

	// RecordListLimitMax is the maximum number of rows returned by listing requests
	RecordListLimitMax int `yaml:"record_list_limit_max" json:"record_list_limit_max"`

	// BootstrapAdminUsername is the username of the primary administrator.
	// This account is seeded at startup and can never be deleted.
	BootstrapAdminUsername string `yaml:"bootstrap_admin_username" json:"bootstrap_admin_username"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values.
func newDefault() *Config {
	return &Config{
		ReferenceFile:          "Villages.xlsx",
		SessionTokenTTL:        480,
		RecordListLimitMax:     1000,
		BootstrapAdminUsername: "admin",
		sources:                make(map[string]string),
	}
}

func attributeNames() []string {
	return []string{
		"reference_file", "session_token_ttl",
		"record_list_limit_max", "bootstrap_admin_username",
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("TOPODAILY_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func (c *Config) applyFileConfig(file *Config) {
	if file.ReferenceFile != "" {
		c.ReferenceFile = file.ReferenceFile
		c.sources["reference_file"] = "file"
	}
	if file.SessionTokenTTL != 0 {
		c.SessionTokenTTL = file.SessionTokenTTL
		c.sources["session_token_ttl"] = "file"
	}
	if file.RecordListLimitMax != 0 {
		c.RecordListLimitMax = file.RecordListLimitMax
		c.sources["record_list_limit_max"] = "file"
	}
	if file.BootstrapAdminUsername != "" {
		c.BootstrapAdminUsername = file.BootstrapAdminUsername
		c.sources["bootstrap_admin_username"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("TOPODAILY_REFERENCE_FILE"); val != "" {
		c.ReferenceFile = val
		c.sources["reference_file"] = "environment"
	}
	if val := os.Getenv("TOPODAILY_SESSION_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTokenTTL = i
			c.sources["session_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("TOPODAILY_RECORD_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RecordListLimitMax = i
			c.sources["record_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("TOPODAILY_BOOTSTRAP_ADMIN_USERNAME"); val != "" {
		c.BootstrapAdminUsername = val
		c.sources["bootstrap_admin_username"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionTTL returns the session token TTL as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTokenTTL) * time.Minute
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.SessionTokenTTL <= 0 {
		return fmt.Errorf("session_token_ttl must be positive, got %d", c.SessionTokenTTL)
	}
	if c.RecordListLimitMax <= 0 {
		return fmt.Errorf("record_list_limit_max must be positive, got %d", c.RecordListLimitMax)
	}
	if c.BootstrapAdminUsername == "" {
		return fmt.Errorf("bootstrap_admin_username must not be empty")
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources.
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "reference_file", Value: c.ReferenceFile, Source: c.Source("reference_file")},
		{Name: "session_token_ttl", Value: strconv.Itoa(c.SessionTokenTTL), Source: c.Source("session_token_ttl")},
		{Name: "record_list_limit_max", Value: strconv.Itoa(c.RecordListLimitMax), Source: c.Source("record_list_limit_max")},
		{Name: "bootstrap_admin_username", Value: c.BootstrapAdminUsername, Source: c.Source("bootstrap_admin_username")},
	}
}

// FormatText returns a text representation of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration.
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
