package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Model   ModelConfig   `json:"model"`
	Upload  UploadConfig  `json:"upload"`
	History HistoryConfig `json:"history"`
}

// ModelConfig holds configuration for the inference engine
type ModelConfig struct {
	// ManifestPath points at the model manifest JSON. Empty runs the
	// untrained placeholder network.
	ManifestPath string `json:"manifest_path"`

	InputSize      int `json:"input_size"`
	TimeoutSeconds int `json:"timeout_seconds"`

	// LegacyRandomResults reproduces the original app's randomized output
	// instead of the arg-max result.
	LegacyRandomResults bool `json:"legacy_random_results"`
}

// UploadConfig holds limits for user-supplied images
type UploadConfig struct {
	MaxBytes int64 `json:"max_bytes"`
}

// HistoryConfig holds configuration for the rolling analysis history
type HistoryConfig struct {
	Path          string `json:"path"`
	Capacity      int    `json:"capacity"`
	ThumbnailSize int    `json:"thumbnail_size"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			ManifestPath:   "",
			InputSize:      224,
			TimeoutSeconds: 10,
		},
		Upload: UploadConfig{
			MaxBytes: 10 << 20,
		},
		History: HistoryConfig{
			Path:          defaultHistoryPath(),
			Capacity:      10,
			ThumbnailSize: 96,
		},
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./history.json"
	}
	return filepath.Join(home, ".local", "share", "cropsight", "history.json")
}

// LoadFromFile loads configuration from a JSON file. Missing keys keep
// their defaults.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Model.InputSize < 1 {
		return fmt.Errorf("model.input_size must be positive")
	}

	if c.Model.TimeoutSeconds < 1 {
		return fmt.Errorf("model.timeout_seconds must be positive")
	}

	if c.Upload.MaxBytes < 1 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}

	if c.History.Capacity < 1 {
		return fmt.Errorf("history.capacity must be positive")
	}

	if c.History.Path == "" {
		return fmt.Errorf("history.path cannot be empty")
	}

	if c.History.ThumbnailSize < 16 || c.History.ThumbnailSize > 512 {
		return fmt.Errorf("history.thumbnail_size must be between 16 and 512")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "cropsight", "config.json")
}
