package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GameEntry names an installed game directory.
type GameEntry struct {
	ID     string `yaml:"id"` // short name used on the command line
	Title  string `yaml:"title"`
	Path   string `yaml:"path"`    // may start with ~/
	GameID string `yaml:"game_id"` // overrides scripts.game_id for this game
}

type gamesFile struct {
	Games []GameEntry `yaml:"games"`
}

// LoadGames loads the game catalog.
// Search order: customPath -> ~/.agi/configs/games.yaml -> ./configs/games.yaml
// A custom path must exist; without one a missing catalog is empty.
func LoadGames(customPath string) ([]GameEntry, error) {
	paths := []string{customPath}
	if customPath == "" {
		paths = []string{userConfigPath("games.yaml"), filepath.Join("configs", "games.yaml")}
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if customPath == "" && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read games %s: %w", path, err)
		}
		var f gamesFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse games %s: %w", path, err)
		}
		return f.Games, validateGames(f.Games)
	}
	return nil, nil
}

func validateGames(games []GameEntry) error {
	var errs []error
	seen := make(map[string]bool)
	for i, g := range games {
		switch {
		case g.ID == "":
			errs = append(errs, fmt.Errorf("games[%d]: id is required", i))
		case seen[g.ID]:
			errs = append(errs, fmt.Errorf("games[%d]: duplicate id %q", i, g.ID))
		}
		seen[g.ID] = true
		if g.Path == "" {
			errs = append(errs, fmt.Errorf("games[%d]: path is required", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid game catalog: %w", err)
	}
	return nil
}
