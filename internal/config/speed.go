package config

import "fmt"

// SpeedPreset represents a named game speed.
type SpeedPreset string

const (
	SpeedFastest SpeedPreset = "fastest"
	SpeedFast    SpeedPreset = "fast"
	SpeedNormal  SpeedPreset = "normal"
	SpeedSlow    SpeedPreset = "slow"
)

// presetIntervals maps presets to the animation interval variable. The
// interpreter runs a full cycle every interval*3 ticks.
var presetIntervals = map[SpeedPreset]int{
	SpeedFastest: 0,
	SpeedFast:    1,
	SpeedNormal:  2,
	SpeedSlow:    4,
}

// ParseSpeedPreset validates a preset name.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	p := SpeedPreset(s)
	if _, ok := presetIntervals[p]; !ok {
		return "", fmt.Errorf("unknown speed %q (want fastest, fast, normal or slow)", s)
	}
	return p, nil
}

// IntervalForPreset returns the animation interval for a preset.
func IntervalForPreset(preset SpeedPreset) int {
	if iv, ok := presetIntervals[preset]; ok {
		return iv
	}
	return presetIntervals[SpeedNormal]
}

// ApplySpeedPreset modifies the config based on a speed preset.
func ApplySpeedPreset(cfg *EngineConfig, preset SpeedPreset) {
	cfg.Timing.Speed = preset
	cfg.Timing.AnimationInterval = IntervalForPreset(preset)
}

// CycleInterval returns the animation interval the interpreter should
// start with and whether it is forced. A speed preset wins over an
// explicit interval; an interval of 0 without a preset is not forced.
func (c EngineConfig) CycleInterval() (int, bool) {
	if c.Timing.Speed != "" {
		return IntervalForPreset(c.Timing.Speed), true
	}
	return c.Timing.AnimationInterval, c.Timing.AnimationInterval != 0
}
