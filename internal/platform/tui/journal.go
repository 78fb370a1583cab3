package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-agi/internal/storage"
)

// Journal viewer layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the session sidebar
	sidebarWidth       = 24  // Width of the session sidebar
	maxEntries         = 500 // Max entries to load
	maxSessions        = 50
)

// JournalSource is the journal store the viewer reads.
type JournalSource interface {
	Entries(kind string, limit int) ([]storage.EntryRecord, error)
	SessionEntries(sessionID int64) ([]storage.EntryRecord, error)
	RecentSessions(limit int) ([]storage.Session, error)
}

// Entry kinds the filter key cycles through; "" shows every kind.
var journalKinds = []string{"", "log", "fault"}

// JournalKeyMap defines the key bindings for the journal viewer.
type JournalKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextSession key.Binding
	PrevSession key.Binding
	Filter      key.Binding
	Quit        key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSession, k.Filter, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextSession, k.PrevSession},
		{k.Filter, k.Quit},
	}
}

// DefaultJournalKeyMap returns the default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSession: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next session"),
		),
		PrevSession: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev session"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter kind"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing the journal.
type JournalModel struct {
	source   JournalSource
	sessions []storage.Session
	cursor   int // 0 is every session, i selects sessions[i-1]
	kind     int // index into journalKinds
	entries  []storage.EntryRecord
	err      error
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	quitting bool
}

// NewJournalModel creates a journal viewer over source.
func NewJournalModel(source JournalSource, width, height int) JournalModel {
	h := help.New()
	h.ShowAll = false

	m := JournalModel{
		source: source,
		keys:   DefaultJournalKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.sessions, m.err = source.RecentSessions(maxSessions)
	m.table = m.createTable()
	m.load()
	return m
}

func (m *JournalModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// createTable creates a new table sized to the terminal.
func (m *JournalModel) createTable() table.Model {
	tableWidth := m.width - 4
	if m.showSidebar() {
		tableWidth -= sidebarWidth + 3
	}
	msgWidth := tableWidth - 8 - 6 - 6 - 7 - 10
	if msgWidth < 20 {
		msgWidth = 20
	}

	columns := []table.Column{
		{Title: "Tick", Width: 8},
		{Title: "Room", Width: 6},
		{Title: "Logic", Width: 6},
		{Title: "Kind", Width: 7},
		{Title: "Message", Width: msgWidth},
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches entries for the current session and kind.
func (m *JournalModel) load() {
	kind := journalKinds[m.kind]

	var entries []storage.EntryRecord
	var err error
	if m.cursor == 0 {
		entries, err = m.source.Entries(kind, maxEntries)
	} else {
		entries, err = m.source.SessionEntries(m.sessions[m.cursor-1].ID)
		if kind != "" {
			filtered := entries[:0]
			for _, e := range entries {
				if e.Kind == kind {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}
	}
	m.entries, m.err = entries, err
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded entries.
func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.Tick),
			fmt.Sprintf("%d", e.Room),
			fmt.Sprintf("%d", e.Logic),
			e.Kind,
			e.Message,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal viewer.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSession):
			m.cursor = (m.cursor + 1) % (len(m.sessions) + 1)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevSession):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.sessions)
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.kind = (m.kind + 1) % len(journalKinds)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// title describes the current selection.
func (m JournalModel) title() string {
	scope := "all sessions"
	if m.cursor > 0 {
		s := m.sessions[m.cursor-1]
		scope = fmt.Sprintf("session %d (%s)", s.ID, s.GameID)
	}
	kind := journalKinds[m.kind]
	if kind == "" {
		kind = "all kinds"
	}
	return fmt.Sprintf("JOURNAL - %s, %s", scope, kind)
}

// View renders the journal viewer.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(m.title(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(m.renderTableContent())

	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(content)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the sessions with the cursor.
func (m JournalModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Sessions\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	labels := []string{"All"}
	for _, s := range m.sessions {
		label := fmt.Sprintf("#%d %s", s.ID, s.GameID)
		if s.Faults > 0 {
			label += fmt.Sprintf(" !%d", s.Faults)
		}
		labels = append(labels, label)
	}

	for i, label := range labels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		maxLen := sidebarWidth - 6
		if len(label) > maxLen {
			label = label[:maxLen-1] + "."
		}
		sb.WriteString(style.Render(cursor + label))
		sb.WriteString("\n")
	}
	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m JournalModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	if m.err != nil {
		return emptyStyle.Render("Cannot read journal:\n" + m.err.Error())
	}
	if len(m.entries) == 0 {
		return emptyStyle.Render("No journal entries yet.\nScripts add them with log().")
	}
	return m.table.View()
}

// Rows returns the rows currently shown.
func (m JournalModel) Rows() []table.Row {
	return m.table.Rows()
}

// IsQuitting returns true if the user closed the viewer.
func (m JournalModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text to centre it in width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunJournal runs the journal viewer in the local terminal.
func RunJournal(source JournalSource, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
