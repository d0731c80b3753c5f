package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// configNames are tried, in order, inside each search directory.
var configNames = []string{"dodge.yaml", "dodge.yml", "dodge.toml"}

// LoadDodge loads the game configuration.
// Search order: customPath -> ~/.dodge/dodge.{yaml,yml,toml} -> ./configs/dodge.{yaml,yml,toml} -> embedded default.
// Fields missing from a file keep their default values.
func LoadDodge(customPath string) (DodgeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return DodgeConfig{}, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".dodge"))
	}
	dirs = append(dirs, "configs")

	// User and local config files are best-effort: unreadable or invalid
	// files fall through to the next candidate.
	for _, dir := range dirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if cfg, err := decode(path, data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := decode("dodge.yaml", defaultDodgeYAML)
	if err != nil {
		return DefaultDodgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses data on top of the defaults, choosing TOML or YAML by extension.
func decode(path string, data []byte) (DodgeConfig, error) {
	cfg := DefaultDodgeConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return DodgeConfig{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DodgeConfig{}, err
		}
	}
	return cfg, nil
}
