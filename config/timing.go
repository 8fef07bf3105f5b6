package config

import (
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-wayout/animation"
	"gopkg.in/yaml.v3"
)

// timingFile is the YAML layout of a timing override file. Omitted keys keep their base value.
type timingFile struct {
	StepDelayMs              *int `yaml:"step_delay_ms"`
	BacktrackDelayMs         *int `yaml:"backtrack_delay_ms"`
	BacktrackPauseMultiplier *int `yaml:"backtrack_pause_multiplier"`
}

// Timing returns the animation timing described by the environment.
func (c Config) Timing() animation.Timing {
	return animation.Timing{
		StepDelay:                time.Duration(c.StepDelayMs) * time.Millisecond,
		BacktrackDelay:           time.Duration(c.BacktrackDelayMs) * time.Millisecond,
		BacktrackPauseMultiplier: c.BacktrackPauseMultiplier,
	}
}

// LoadTiming reads a YAML timing file and applies the keys it sets on top of base.
func LoadTiming(path string, base animation.Timing) (animation.Timing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading timing file: %w", err)
	}

	var f timingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("parsing timing file %s: %w", path, err)
	}

	if f.StepDelayMs != nil {
		base.StepDelay = time.Duration(*f.StepDelayMs) * time.Millisecond
	}
	if f.BacktrackDelayMs != nil {
		base.BacktrackDelay = time.Duration(*f.BacktrackDelayMs) * time.Millisecond
	}
	if f.BacktrackPauseMultiplier != nil {
		base.BacktrackPauseMultiplier = *f.BacktrackPauseMultiplier
	}
	return base, nil
}
