package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "happyball.yaml"

// LoadHappyBall loads and validates the game configuration.
// Search order: customPath -> ~/.happyball/configs/happyball.yaml ->
// ./configs/happyball.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; broken
// files in the implicit locations are skipped.
func LoadHappyBall(customPath string) (HappyBallConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(FileName), filepath.Join("configs", FileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			continue
		}
		if cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return Parse(defaultHappyBallYAML)
}

// Parse decodes a YAML document on top of the built-in defaults and validates
// the result. Keys missing from the document keep their default values.
func Parse(data []byte) (HappyBallConfig, error) {
	cfg := DefaultHappyBallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultHappyBallConfig(), fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) (HappyBallConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HappyBallConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultHappyBallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".happyball", "configs", filename)
}
