package config

import (
	_ "embed"
)

//go:embed defaults/physics.yaml
var defaultPhysicsYAML []byte

//go:embed defaults/animals.yaml
var defaultAnimalsYAML []byte

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRulebook returns the thresholds the game's level designers use.
func DefaultRulebook() Rulebook {
	return Rulebook{
		MaxGapWidth:        2,
		BridgeRows:         2,
		MaxWallHeight:      6,
		MinWallPairGap:     3,
		MinWallPairOverlap: 3,
		MinPlatformGap:     2,
		SlideSamples:       20,
		SlideCorridor:      1,
		MinFunScore:        70,
		TargetAvgFun:       85,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config file name
// ("physics", "animals" or "rules").
func GetDefaultYAML(name string) []byte {
	switch name {
	case "physics":
		return defaultPhysicsYAML
	case "animals":
		return defaultAnimalsYAML
	case "rules":
		return defaultRulesYAML
	default:
		return nil
	}
}
