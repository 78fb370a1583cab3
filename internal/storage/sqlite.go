// Package storage provides SQLite-based persistence for the interpreter
// journal: play sessions, script log() entries and tick faults.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-agi/internal/interp"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Session is one run of a game, from start to quit or disconnect.
type Session struct {
	ID        int64
	GameID    string
	User      string // SSH user, empty for local play
	Ticks     uint64
	Faults    int
	StartedAt time.Time
	EndedAt   time.Time // zero while the session is open
}

// EntryRecord is a journal entry as stored.
type EntryRecord struct {
	ID        int64
	SessionID int64
	interp.Entry
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			user TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			faults INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);

		CREATE TABLE IF NOT EXISTS journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL DEFAULT 0,
			kind TEXT NOT NULL,
			tick INTEGER NOT NULL,
			room INTEGER NOT NULL,
			logic INTEGER NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_journal_kind ON journal(kind);
		CREATE INDEX IF NOT EXISTS idx_journal_session ON journal(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession opens a session row and returns its ID.
func (s *Store) StartSession(gameID, user string) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO sessions (game_id, user, started_at) VALUES (?, ?, ?)",
		gameID, user, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// EndSession closes a session with its final counters.
func (s *Store) EndSession(id int64, ticks uint64, faults int) error {
	_, err := s.db.Exec(
		"UPDATE sessions SET ticks = ?, faults = ?, ended_at = ? WHERE id = ?",
		int64(ticks), faults, time.Now().UTC().Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	return nil
}

// RecentSessions returns the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, user, ticks, faults, started_at, ended_at
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var ss Session
		var ticks int64
		var startedAt, endedAt any
		if err := rows.Scan(&ss.ID, &ss.GameID, &ss.User, &ticks, &ss.Faults, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ss.Ticks = uint64(ticks)
		ss.StartedAt = parseTime(startedAt)
		ss.EndedAt = parseTime(endedAt)
		sessions = append(sessions, ss)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// Record appends an entry outside any session.
func (s *Store) Record(e interp.Entry) error {
	_, err := s.record(0, e)
	return err
}

func (s *Store) record(sessionID int64, e interp.Entry) (int64, error) {
	at := e.Time
	if at.IsZero() {
		at = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO journal (session_id, kind, tick, room, logic, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, e.Kind, int64(e.Tick), e.Room, e.Logic, e.Message, at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record %s entry: %w", e.Kind, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Entries returns the most recent journal entries, newest first. An empty
// kind returns every kind.
func (s *Store) Entries(kind string, limit int) ([]EntryRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, session_id, kind, tick, room, logic, message, created_at FROM journal`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	return s.queryEntries(query, args...)
}

// SessionEntries returns every entry of one session in recording order.
func (s *Store) SessionEntries(sessionID int64) ([]EntryRecord, error) {
	return s.queryEntries(
		`SELECT id, session_id, kind, tick, room, logic, message, created_at
		 FROM journal
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
}

func (s *Store) queryEntries(query string, args ...any) ([]EntryRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query journal: %w", err)
	}
	defer rows.Close()

	var entries []EntryRecord
	for rows.Next() {
		var r EntryRecord
		var tick int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Kind, &tick, &r.Room, &r.Logic, &r.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Tick = uint64(tick)
		r.Time = parseTime(createdAt)
		entries = append(entries, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// FaultCount returns how many faults were recorded.
func (s *Store) FaultCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM journal WHERE kind = 'fault'").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count faults: %w", err)
	}
	return n, nil
}

// ClearJournal deletes every entry and session.
func (s *Store) ClearJournal() error {
	_, err := s.db.Exec("DELETE FROM journal; DELETE FROM sessions;")
	if err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}

// SessionJournal records entries against one session. It implements
// interp.Journal.
type SessionJournal struct {
	store *Store
	id    int64
}

// Journal opens a session and returns a journal bound to it.
func (s *Store) Journal(gameID, user string) (*SessionJournal, error) {
	id, err := s.StartSession(gameID, user)
	if err != nil {
		return nil, err
	}
	return &SessionJournal{store: s, id: id}, nil
}

// ID returns the session ID.
func (j *SessionJournal) ID() int64 { return j.id }

// Record implements interp.Journal.
func (j *SessionJournal) Record(e interp.Entry) error {
	_, err := j.store.record(j.id, e)
	return err
}

// End closes the session.
func (j *SessionJournal) End(ticks uint64, faults int) error {
	if j == nil {
		return errors.New("storage: no session")
	}
	return j.store.EndSession(j.id, ticks, faults)
}

var (
	_ interp.Journal = (*Store)(nil)
	_ interp.Journal = (*SessionJournal)(nil)
)

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
