package interp

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-agi/internal/config"
)

// ConfigOptions maps an engine configuration onto interpreter options.
// Collaborators are left for the caller to fill in. A zero seed is
// replaced with one from the clock.
func ConfigOptions(cfg config.EngineConfig, logger *log.Logger) Options {
	interval, forced := cfg.CycleInterval()
	seed := cfg.Motion.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Options{
		GameID:                 cfg.Scripts.GameID,
		PriorityBase:           cfg.Screen.PriorityBase,
		Horizon:                cfg.Screen.Horizon,
		Seed:                   seed,
		MinDist:                cfg.Motion.WanderMinDist,
		MaxDist:                cfg.Motion.WanderMaxDist,
		AnimationInterval:      interval,
		ForceAnimationInterval: forced,
		MessagesCrypted:        cfg.Scripts.MessagesCrypted,
		MaxCallDepth:           cfg.Scripts.MaxCallDepth,
		Logger:                 logger,
	}
}
