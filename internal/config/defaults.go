package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default interpreter configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Timing: TimingConfig{
			TickRate:          60,
			AnimationInterval: 0,
		},
		Screen: ScreenConfig{
			PriorityBase: 48,
			Horizon:      36,
		},
		Motion: MotionConfig{
			WanderMinDist: 6,
			WanderMaxDist: 50,
		},
		Scripts: ScriptConfig{
			MessagesCrypted: true,
			MaxCallDepth:    64,
		},
		Log: LogConfig{
			Level: "info",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "~/.agi/journal.db",
		},
	}
}
