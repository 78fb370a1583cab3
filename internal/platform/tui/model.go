package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-agi/internal/config"
	"github.com/vovakirdan/tui-agi/internal/interp"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

// Options configures a play model.
type Options struct {
	Config   config.EngineConfig
	Journal  interp.Journal
	Logger   *log.Logger
	Lipgloss *lipgloss.Renderer // nil for local stdout
	Width    int
	Height   int
}

// Counters are the tick and fault counts of a running model, published
// after every tick. They are safe to read from any goroutine.
type Counters struct {
	ticks  atomic.Uint64
	faults atomic.Int64
}

// Load returns the counts as of the last finished tick.
func (c *Counters) Load() (ticks uint64, faults int) {
	return c.ticks.Load(), int(c.faults.Load())
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	machine  Machine
	counters *Counters
	console  *Console
	frame    *Frame
	renderer *Renderer
	keys     *KeyMapper
	logger   *log.Logger
	tickRate int
	scale    int // fixed scale, 0 follows the terminal size
	gameID   string
	quitting bool
}

// NewModel creates a model running game under opts.
func NewModel(game resource.Game, opts Options) Model {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	console := NewConsole()
	frame := NewFrame()
	iopts := interp.ConfigOptions(cfg, logger)
	iopts.Text = console
	iopts.Presenter = frame
	iopts.Journal = opts.Journal
	it := interp.New(game, iopts)
	console.Bind(it.State())

	scale := cfg.Screen.Scale
	if scale == 0 {
		scale = ScaleFor(opts.Width, opts.Height)
	}

	return Model{
		machine:  it,
		counters: &Counters{},
		console:  console,
		frame:    frame,
		renderer: NewRenderer(scale, opts.Lipgloss),
		keys:     NewKeyMapper(),
		logger:   logger,
		tickRate: cfg.Timing.TickRate,
		scale:    cfg.Screen.Scale,
		gameID:   cfg.Scripts.GameID,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		if m.scale == 0 {
			m.renderer.SetScale(ScaleFor(msg.Width, msg.Height))
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlS {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.Apply(msg, m.machine) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick runs one interpreter tick. Faults are journaled by the
// interpreter and do not stop the game.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	//nolint:errcheck // faults are logged and journaled by the interpreter
	m.machine.Tick()
	m.keys.Release(m.machine)
	m.counters.ticks.Store(m.machine.Ticks())
	m.counters.faults.Store(int64(m.machine.Faults()))

	if m.machine.Quit() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// saveScreenshot writes the current frame without colour to
// ~/.agi/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".agi", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	name := m.gameID
	if name == "" {
		name = "agi"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, time.Now().Format("20060102_150405")))
	text := m.renderer.Compose(m.frame, m.console).String()
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderer.Render(m.frame, m.console)
}

// Ticks returns how many ticks the interpreter ran.
func (m Model) Ticks() uint64 { return m.machine.Ticks() }

// Faults returns how many cycles aborted with a fault.
func (m Model) Faults() int { return m.machine.Faults() }

// Counters returns the counters the model publishes while it runs.
func (m Model) Counters() *Counters { return m.counters }

// Run plays game in the local terminal until the game quits or the user
// presses ctrl+c. It returns the final tick and fault counts.
func Run(game resource.Game, opts Options) (ticks uint64, faults int, err error) {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return 0, 0, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Ticks(), fm.Faults(), nil
	}
	return model.Ticks(), model.Faults(), nil
}
