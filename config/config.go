// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName        = "lenslate"
	configFileName = "config.json"
)

// Engine holds credentials and model selection for the remote engine.
type Engine struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`

	Model           string `json:"model,omitempty"`
	VisionModel     string `json:"vision_model,omitempty"`
	SpeechModel     string `json:"speech_model,omitempty"`
	TranscribeModel string `json:"transcribe_model,omitempty"`
}

// Speech holds playback settings.
type Speech struct {
	Voice string  `json:"voice,omitempty"`
	Rate  float64 `json:"rate,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	Engine Engine `json:"engine"`
	Speech Speech `json:"speech,omitempty"`

	// DataDir is where the local store and result cache live. Empty means
	// the platform user-config directory.
	DataDir string `json:"data_dir,omitempty"`

	// DefaultLanguages maps a source language to its preferred target.
	DefaultLanguages map[string]string `json:"default_languages"`

	// WiFiOnlyDownloads makes model downloads try a WiFi-restricted
	// fetch first, falling back to unrestricted only when that fails.
	// When false, downloads go straight to the unrestricted path.
	WiFiOnlyDownloads bool `json:"wifi_only_downloads"`
}

// Load loads configuration from the config file.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DefaultLanguages == nil {
		cfg.DefaultLanguages = defaultLanguages()
	}
	return &cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo persists the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DataPath resolves the directory for persistent data, creating it when
// needed.
func (c *Config) DataPath() (string, error) {
	dir := c.DataDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("get user config dir: %w", err)
		}
		dir = filepath.Join(base, appName, "data")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// TargetFor returns the preferred target language for a source, falling
// back to the pair defaults.
func (c *Config) TargetFor(source string) string {
	if target, ok := c.DefaultLanguages[source]; ok {
		return target
	}
	if source == "en" {
		return "vi"
	}
	return "en"
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

func defaultConfig() *Config {
	return &Config{
		DefaultLanguages:  defaultLanguages(),
		WiFiOnlyDownloads: true,
	}
}

func defaultLanguages() map[string]string {
	return map[string]string{
		"en": "vi",
		"vi": "en",
	}
}
