// Package formats provides pluggable level file format parsers.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID              string               `yaml:"id"`
	Number          int                  `yaml:"number,omitempty"`
	Name            string               `yaml:"name"`
	Theme           string               `yaml:"theme,omitempty"`
	PlayerStart     YAMLCoord            `yaml:"player_start"`
	Nest            YAMLCoord            `yaml:"nest"`
	Medals          YAMLMedals           `yaml:"medals,omitempty"`
	Spawns          []YAMLSpawn          `yaml:"spawns"`
	Slides          []YAMLSlide          `yaml:"slides,omitempty"`
	MovingPlatforms []YAMLMovingPlatform `yaml:"moving_platforms,omitempty"`
	WindZones       []YAMLWindZone       `yaml:"wind_zones,omitempty"`
	Puddles         []YAMLPuddle         `yaml:"puddles,omitempty"`
	Tiles           []string             `yaml:"tiles"`
}

// YAMLCoord is a tile coordinate.
type YAMLCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLPoint is a pixel position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLMedals holds medal times in seconds.
type YAMLMedals struct {
	Gold   int `yaml:"gold"`
	Silver int `yaml:"silver"`
	Bronze int `yaml:"bronze"`
}

// YAMLSpawn is an egg spawn point.
type YAMLSpawn struct {
	X          int    `yaml:"x"`
	Y          int    `yaml:"y"`
	Difficulty string `yaml:"difficulty"`
}

// YAMLSlide is a water slide curve in pixels.
type YAMLSlide struct {
	Top    YAMLPoint `yaml:"top"`
	Bottom YAMLPoint `yaml:"bottom"`
	Curve  YAMLPoint `yaml:"curve"`
}

// YAMLMovingPlatform is a patrolling platform; DurationMS is one full cycle.
type YAMLMovingPlatform struct {
	Start      YAMLCoord `yaml:"start"`
	End        YAMLCoord `yaml:"end"`
	DurationMS int       `yaml:"duration_ms"`
}

// YAMLWindZone is a rectangle of tiles that pushes the player.
type YAMLWindZone struct {
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Direction string  `yaml:"direction"`
	Strength  float64 `yaml:"strength"`
}

// YAMLPuddle is a run of slowing tiles.
type YAMLPuddle struct {
	X          int     `yaml:"x"`
	Y          int     `yaml:"y"`
	Width      int     `yaml:"width"`
	SlowFactor float64 `yaml:"slow_factor"`
}

// ParseYAML parses a YAML level file. Unknown keys are rejected so that a
// misspelled field fails the load instead of silently dropping data.
func ParseYAML(data []byte) (YAMLLevel, error) {
	var yl YAMLLevel
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yl); err != nil {
		if errors.Is(err, io.EOF) {
			return yl, fmt.Errorf("yaml unmarshal: empty document")
		}
		return yl, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
