// agi runs AGI adventure games in the terminal.
//
// Usage:
//
//	agi play <game>          - Play a game
//	agi run <game>           - Run a game headless for a number of ticks
//	agi list [game]          - List installed games, or the resources of one
//	agi disasm <game> <n>    - Disassemble a logic resource
//	agi logs                 - Browse the script journal
//	agi serve [game]         - Start SSH server for remote play
//
// A game is an ID from the games catalog or a game directory.
//
// Global flags:
//
//	--config <path>  - Engine config YAML (default: ~/.agi/configs/engine.yaml)
//	--games <path>   - Games catalog YAML (default: ~/.agi/configs/games.yaml)
//	--speed <name>   - Speed preset: fastest, fast, normal, slow
//	--seed <value>   - Set RNG seed for reproducible wandering
//	--db <path>      - Set journal database path (default: ~/.agi/journal.db)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-agi/internal/config"
	"github.com/vovakirdan/tui-agi/internal/platform/tui"
	"github.com/vovakirdan/tui-agi/internal/registry"
)

var (
	// Global flags
	flagConfig   string
	flagGames    string
	flagSpeed    string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agi",
	Short: "TUI AGI - Play AGI adventure games in your terminal",
	Long: `TUI AGI interprets the logic scripts of AGI adventure games and
draws them in the terminal with half-block characters.

A game is either an ID from the games catalog (games.yaml) or a game
directory. A game directory holds the LOGDIR, PICDIR, VIEWDIR and SNDDIR
index files, the VOL.n volumes, and optionally WORDS.TOK and OBJECT.

Available commands:
  play     - Play a game
  run      - Run a game headless
  list     - Show installed games or the resources of one
  disasm   - Disassemble a logic resource
  logs     - Browse the script journal
  serve    - Start SSH server for remote play

Examples:
  agi list
  agi play kq1
  agi play ./kq1 --speed fast
  agi run kq1 --ticks 600
  agi disasm kq1 0
  agi serve kq1 --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagGames, "games", "", "Path to games catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: fastest, fast, normal, slow")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the engine config and applies the global flags.
func loadConfig() (config.EngineConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSpeed != "" {
		preset, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return cfg, err
		}
		config.ApplySpeedPreset(&cfg, preset)
	}
	if flagSeed != 0 {
		cfg.Motion.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Journal.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

// loadCatalog loads the games catalog.
func loadCatalog() (*registry.Catalog, error) {
	games, err := config.LoadGames(flagGames)
	if err != nil {
		return nil, err
	}
	return registry.New(games)
}

// openGame resolves arg against the catalog and opens the game with cfg
// adjusted for its quirks.
func openGame(catalog *registry.Catalog, arg string, cfg config.EngineConfig) (tui.LoadedGame, error) {
	info, err := catalog.Resolve(arg)
	if err != nil {
		return tui.LoadedGame{}, err
	}
	game, err := registry.Open(info)
	if err != nil {
		return tui.LoadedGame{}, err
	}
	return tui.LoadedGame{ID: info.ID, Resources: game, Config: info.Configure(cfg)}, nil
}

// setup loads the config and catalog and opens the game named by arg.
func setup(arg string) tui.LoadedGame {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	catalog, err := loadCatalog()
	if err != nil {
		fail("%v", err)
	}
	game, err := openGame(catalog, arg, cfg)
	if err != nil {
		fail("cannot open game: %v", err)
	}
	return game
}

// openLogFile opens ~/.agi/agi.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".agi")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "agi.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
