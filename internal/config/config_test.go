package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultEngineYAML)
	if err != nil {
		t.Fatalf("parse(embedded) failed: %v", err)
	}
	if cfg != DefaultEngineConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultEngineConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults failed: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	data := "timing:\n  tick_rate: 30\nscripts:\n  game_id: KQ1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timing.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.Timing.TickRate)
	}
	if cfg.Scripts.GameID != "KQ1" {
		t.Errorf("GameID = %q, expected KQ1", cfg.Scripts.GameID)
	}
	// Keys the file leaves out keep their defaults.
	if cfg.Screen.PriorityBase != 48 {
		t.Errorf("PriorityBase = %d, expected 48", cfg.Screen.PriorityBase)
	}
	if cfg.Scripts.MaxCallDepth != 64 {
		t.Errorf("MaxCallDepth = %d, expected 64", cfg.Scripts.MaxCallDepth)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() on missing file should fail")
	}
}

func TestLoadMalformedCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("timing: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() on malformed YAML should fail")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("screen:\n  priority_base: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "priority_base") {
		t.Errorf("Load() error = %v, expected a priority_base complaint", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*EngineConfig)
		want   string
	}{
		{"defaults", func(*EngineConfig) {}, ""},
		{"zero tick rate", func(c *EngineConfig) { c.Timing.TickRate = 0 }, "tick_rate"},
		{"negative interval", func(c *EngineConfig) { c.Timing.AnimationInterval = -1 }, "animation_interval"},
		{"unknown speed", func(c *EngineConfig) { c.Timing.Speed = "ludicrous" }, "timing.speed"},
		{"priority base off picture", func(c *EngineConfig) { c.Screen.PriorityBase = 168 }, "priority_base"},
		{"horizon off picture", func(c *EngineConfig) { c.Screen.Horizon = 170 }, "horizon"},
		{"odd scale", func(c *EngineConfig) { c.Screen.Scale = 3 }, "screen.scale"},
		{"wander range inverted", func(c *EngineConfig) {
			c.Motion.WanderMinDist = 60
			c.Motion.WanderMaxDist = 10
		}, "wander_min_dist"},
		{"negative call depth", func(c *EngineConfig) { c.Scripts.MaxCallDepth = -1 }, "max_call_depth"},
		{"bad log level", func(c *EngineConfig) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, expected mention of %q", err, tt.want)
			}
		})
	}
}

func TestSpeedPresets(t *testing.T) {
	tests := []struct {
		preset   SpeedPreset
		interval int
	}{
		{SpeedFastest, 0},
		{SpeedFast, 1},
		{SpeedNormal, 2},
		{SpeedSlow, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			p, err := ParseSpeedPreset(string(tt.preset))
			if err != nil {
				t.Fatalf("ParseSpeedPreset() failed: %v", err)
			}
			cfg := DefaultEngineConfig()
			ApplySpeedPreset(&cfg, p)
			if cfg.Timing.AnimationInterval != tt.interval {
				t.Errorf("AnimationInterval = %d, expected %d", cfg.Timing.AnimationInterval, tt.interval)
			}
			if iv, forced := cfg.CycleInterval(); iv != tt.interval || !forced {
				t.Errorf("CycleInterval() = %d, %v, expected %d, true", iv, forced, tt.interval)
			}
		})
	}

	if _, err := ParseSpeedPreset("warp"); err == nil {
		t.Error("ParseSpeedPreset(warp) should fail")
	}
}

func TestCycleIntervalPrefersPreset(t *testing.T) {
	cfg := DefaultEngineConfig()
	if _, forced := cfg.CycleInterval(); forced {
		t.Error("CycleInterval() forced with no interval or preset")
	}
	cfg.Timing.AnimationInterval = 7
	if iv, forced := cfg.CycleInterval(); iv != 7 || !forced {
		t.Errorf("CycleInterval() = %d, %v, expected 7, true", iv, forced)
	}
	cfg.Timing.Speed = SpeedSlow
	if iv, _ := cfg.CycleInterval(); iv != 4 {
		t.Errorf("CycleInterval() = %d, expected 4", iv)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var sb strings.Builder
	cfg := DefaultEngineConfig()
	cfg.Log.Level = "warn"

	logger := cfg.NewLogger(&sb, "agi")
	logger.Info("hidden")
	logger.Warn("shown")

	out := sb.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "agi") {
		t.Errorf("warn message missing or unprefixed: %q", out)
	}
}

func TestLoadGames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yaml")
	data := `games:
  - id: kq1
    title: King's Quest
    path: ~/games/kq1
  - id: kq4
    path: /srv/agi/kq4
    game_id: KQ4
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	games, err := LoadGames(path)
	if err != nil {
		t.Fatalf("LoadGames() failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, expected 2", len(games))
	}
	if games[0].Title != "King's Quest" || games[0].Path != "~/games/kq1" {
		t.Errorf("games[0] = %+v", games[0])
	}
	if games[1].GameID != "KQ4" {
		t.Errorf("games[1].GameID = %q, expected KQ4", games[1].GameID)
	}
}

func TestLoadGamesInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing id", "games:\n  - path: /a\n", "id is required"},
		{"missing path", "games:\n  - id: a\n", "path is required"},
		{"duplicate", "games:\n  - {id: a, path: /a}\n  - {id: a, path: /b}\n", "duplicate id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "games.yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadGames(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("LoadGames() error = %v, expected %q", err, tc.want)
			}
		})
	}
}

func TestLoadGamesMissingCustomPath(t *testing.T) {
	if _, err := LoadGames(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadGames() on missing file should fail")
	}
}
