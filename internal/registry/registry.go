// Package registry keeps the catalog of installed games. Games are added
// from the games.yaml catalog under a short ID, so the CLI and the SSH
// server can open a game by name instead of by directory.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-agi/internal/config"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID     string
	Title  string
	Path   string
	GameID string // interpreter quirk set, e.g. "KQ4"
}

// Catalog maps game IDs to game directories. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	games map[string]GameInfo
}

// New creates a catalog holding entries.
func New(entries []config.GameEntry) (*Catalog, error) {
	c := &Catalog{games: make(map[string]GameInfo)}
	for _, e := range entries {
		if err := c.Register(GameInfo{ID: e.ID, Title: e.Title, Path: e.Path, GameID: e.GameID}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds a game. The title defaults to the ID.
// Returns an error if a game with the same ID is already registered.
func (c *Catalog) Register(g GameInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.games[g.ID]; exists {
		return fmt.Errorf("registry: game %q already registered", g.ID)
	}
	if g.Title == "" {
		g.Title = g.ID
	}
	c.games[g.ID] = g
	return nil
}

// List returns information about all registered games, sorted by ID.
func (c *Catalog) List() []GameInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]GameInfo, 0, len(c.games))
	for _, g := range c.games {
		result = append(result, g)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Exists checks if a game with the given ID is registered.
func (c *Catalog) Exists(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.games[id]
	return ok
}

// Resolve returns the registered game named by arg. An unregistered arg
// that names a directory is taken as an ad hoc game with the directory's
// base name as ID.
func (c *Catalog) Resolve(arg string) (GameInfo, error) {
	c.mu.RLock()
	g, ok := c.games[arg]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}

	if info, err := os.Stat(expandHome(arg)); err == nil && info.IsDir() {
		id := filepath.Base(filepath.Clean(arg))
		return GameInfo{ID: id, Title: id, Path: arg}, nil
	}
	return GameInfo{}, fmt.Errorf("registry: unknown game %q", arg)
}

// Dir indexes the game directory of g.
func (g GameInfo) Dir() (*resource.Dir, error) {
	dir, err := resource.OpenDir(expandHome(g.Path))
	if err != nil {
		return nil, fmt.Errorf("registry: game %q: %w", g.ID, err)
	}
	return dir, nil
}

// Open reads the game directory of g. Pictures render blank and sounds
// finish at once.
func Open(g GameInfo) (resource.Game, error) {
	dir, err := g.Dir()
	if err != nil {
		return resource.Game{}, err
	}
	return resource.Game{
		Logics:     dir,
		Views:      dir,
		Pictures:   resource.Blank{},
		Sounds:     resource.Silent{},
		Vocabulary: dir,
		Inventory:  dir,
	}, nil
}

// Configure returns cfg with the game's quirk set applied.
func (g GameInfo) Configure(cfg config.EngineConfig) config.EngineConfig {
	if g.GameID != "" {
		cfg.Scripts.GameID = g.GameID
	}
	return cfg
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
