package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDodger loads Space Dodger configuration.
// Search order: customPath -> ~/.dodger/configs/dodger.yaml -> ./configs/dodger.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadDodger(customPath string) (DodgerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DodgerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseDodger(data)
		if err != nil {
			return DodgerConfig{}, fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dodger.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseDodger(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "dodger.yaml")); err == nil {
		if cfg, err := ParseDodger(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseDodger(defaultDodgerYAML)
	if err != nil {
		return DefaultDodgerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseDodger decodes YAML over the defaults and validates the result.
func ParseDodger(data []byte) (DodgerConfig, error) {
	cfg := DefaultDodgerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DodgerConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DodgerConfig{}, err
	}
	return cfg, nil
}

// MarshalDodger encodes a config as YAML.
func MarshalDodger(cfg DodgerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dodger", "configs", filename)
}
