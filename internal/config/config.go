// Package config provides YAML-based interpreter configuration loading and
// speed presets.
package config

import (
	"errors"
	"fmt"
)

// EngineConfig contains all configuration for the interpreter and its host.
type EngineConfig struct {
	Timing  TimingConfig  `yaml:"timing"`
	Screen  ScreenConfig  `yaml:"screen"`
	Motion  MotionConfig  `yaml:"motion"`
	Scripts ScriptConfig  `yaml:"scripts"`
	Log     LogConfig     `yaml:"log"`
	Journal JournalConfig `yaml:"journal"`
}

// TimingConfig defines the tick clock.
type TimingConfig struct {
	TickRate          int         `yaml:"tick_rate"`          // Ticks per second
	AnimationInterval int         `yaml:"animation_interval"` // 0 keeps the script-set interval
	Speed             SpeedPreset `yaml:"speed"`              // Overrides AnimationInterval when set
}

// ScreenConfig defines the picture geometry used by the object engine and
// the terminal scale.
type ScreenConfig struct {
	PriorityBase int `yaml:"priority_base"`
	Horizon      int `yaml:"horizon"`
	Scale        int `yaml:"scale"` // 1, 2 or 4; 0 picks one from the terminal size
}

// MotionConfig defines wander distances and the RNG seed.
type MotionConfig struct {
	WanderMinDist int   `yaml:"wander_min_dist"`
	WanderMaxDist int   `yaml:"wander_max_dist"`
	Seed          int64 `yaml:"seed"` // 0 means seed from the clock
}

// ScriptConfig defines how script resources are decoded and run.
type ScriptConfig struct {
	GameID          string `yaml:"game_id"`
	MessagesCrypted bool   `yaml:"messages_crypted"`
	MaxCallDepth    int    `yaml:"max_call_depth"`
}

// LogConfig defines the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// JournalConfig defines the SQLite journal of log() entries and faults.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Picture height; the priority base must lie above it.
const pictureHeight = 168

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting.
func (c EngineConfig) Validate() error {
	var errs []error
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Timing.AnimationInterval < 0 || c.Timing.AnimationInterval > 255 {
		errs = append(errs, fmt.Errorf("timing.animation_interval must be 0-255, got %d", c.Timing.AnimationInterval))
	}
	if c.Timing.Speed != "" {
		if _, ok := presetIntervals[c.Timing.Speed]; !ok {
			errs = append(errs, fmt.Errorf("timing.speed %q is not a known preset", c.Timing.Speed))
		}
	}
	if c.Screen.PriorityBase < 0 || c.Screen.PriorityBase >= pictureHeight {
		errs = append(errs, fmt.Errorf("screen.priority_base must be 0-%d, got %d", pictureHeight-1, c.Screen.PriorityBase))
	}
	if c.Screen.Horizon < 0 || c.Screen.Horizon >= pictureHeight {
		errs = append(errs, fmt.Errorf("screen.horizon must be 0-%d, got %d", pictureHeight-1, c.Screen.Horizon))
	}
	switch c.Screen.Scale {
	case 0, 1, 2, 4:
	default:
		errs = append(errs, fmt.Errorf("screen.scale must be 0, 1, 2 or 4, got %d", c.Screen.Scale))
	}
	if c.Motion.WanderMinDist > c.Motion.WanderMaxDist {
		errs = append(errs, fmt.Errorf("motion.wander_min_dist %d exceeds wander_max_dist %d",
			c.Motion.WanderMinDist, c.Motion.WanderMaxDist))
	}
	if c.Scripts.MaxCallDepth < 0 {
		errs = append(errs, fmt.Errorf("scripts.max_call_depth must not be negative, got %d", c.Scripts.MaxCallDepth))
	}
	if c.Log.Level != "" && !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid engine config: %w", err)
	}
	return nil
}
