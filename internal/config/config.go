package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	History struct {
		Path           string `yaml:"path"`
		ExportFilename string `yaml:"export_filename"`
	} `yaml:"history"`

	Toxicity struct {
		BaseURL           string        `yaml:"base_url"`
		Model             string        `yaml:"model"`
		APIKey            string        `yaml:"api_key"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerMinute int           `yaml:"requests_per_minute"` // 0 disables rate limiting
	} `yaml:"toxicity"`

	Upload struct {
		MaxBytes int64 `yaml:"max_bytes"`
	} `yaml:"upload"`
}

// LoadConfig loads configuration from YAML file
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()

	// Expand environment variables in the API token
	config.Toxicity.APIKey = os.ExpandEnv(config.Toxicity.APIKey)

	if config.Toxicity.RequestsPerMinute < 0 {
		return nil, fmt.Errorf("toxicity.requests_per_minute must not be negative, got %d", config.Toxicity.RequestsPerMinute)
	}

	return config, nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8501"
	}

	if c.History.Path == "" {
		c.History.Path = "analysis_history.csv"
	}

	if c.History.ExportFilename == "" {
		c.History.ExportFilename = "cyberbro_full_history.csv"
	}

	if c.Toxicity.BaseURL == "" {
		c.Toxicity.BaseURL = "https://api-inference.huggingface.co"
	}

	if c.Toxicity.Model == "" {
		c.Toxicity.Model = "unitary/toxic-bert"
	}

	if c.Toxicity.Timeout == 0 {
		c.Toxicity.Timeout = 30 * time.Second
	}

	if c.Upload.MaxBytes == 0 {
		c.Upload.MaxBytes = 10 << 20
	}
}
