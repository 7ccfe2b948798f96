package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/levelsim/internal/physics"
)

// Paths names explicit config files. Empty fields fall through the
// default search order.
type Paths struct {
	Physics string
	Animals string
	Rules   string
}

// Load resolves all three config files and validates them.
func Load(p Paths) (Config, error) {
	var cfg Config
	var err error

	if cfg.Physics, err = LoadPhysics(p.Physics); err != nil {
		return cfg, err
	}
	if cfg.Animals, err = LoadAnimals(p.Animals); err != nil {
		return cfg, err
	}
	if cfg.Rules, err = LoadRules(p.Rules); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadPhysics loads world physics. Keys missing from the file keep their
// default values.
// Search order: customPath -> ~/.levelsim/configs/physics.yaml -> ./configs/physics.yaml -> embedded default
func LoadPhysics(customPath string) (physics.Constants, error) {
	data, src, err := readConfig(customPath, "physics")
	if err != nil {
		return physics.Constants{}, err
	}

	cfg := physics.DefaultConstants()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", src, err)
	}
	if err := ValidateConstants(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", src, err)
	}
	return cfg, nil
}

// LoadAnimals loads the animal table and resolves it against its defaults.
// Search order: customPath -> ~/.levelsim/configs/animals.yaml -> ./configs/animals.yaml -> embedded default
func LoadAnimals(customPath string) ([]physics.Animal, error) {
	data, src, err := readConfig(customPath, "animals")
	if err != nil {
		return nil, err
	}

	var table AnimalTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", src, err)
	}
	animals, err := table.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", src, err)
	}
	return animals, nil
}

// LoadRules loads the structural rulebook. Keys missing from the file keep
// their default values.
// Search order: customPath -> ~/.levelsim/configs/rules.yaml -> ./configs/rules.yaml -> embedded default
func LoadRules(customPath string) (Rulebook, error) {
	data, src, err := readConfig(customPath, "rules")
	if err != nil {
		return Rulebook{}, err
	}

	cfg := DefaultRulebook()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", src, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", src, err)
	}
	return cfg, nil
}

// readConfig returns the first config file found for name along with a
// label for error messages. An explicit path must exist.
func readConfig(customPath, name string) ([]byte, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return data, customPath, nil
	}

	filename := name + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			return data, userCfgPath, nil
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", filename)
	if data, err := os.ReadFile(local); err == nil {
		return data, local, nil
	}

	return GetDefaultYAML(name), "embedded " + filename, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".levelsim", "configs", filename)
}
