package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-agi/internal/engine"
	"github.com/vovakirdan/tui-agi/internal/interp"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandHome("~/.agi/journal.db")
	if err != nil {
		t.Fatalf("expandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".agi", "journal.db"); got != want {
		t.Errorf("expandHome() = %q, expected %q", got, want)
	}
	if got, _ := expandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("expandHome(abs) = %q, expected it unchanged", got)
	}
}

func TestStoreRecordAndEntries(t *testing.T) {
	store := openTestStore(t)

	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	entries := []interp.Entry{
		{Time: at, Kind: "log", Tick: 10, Room: 1, Logic: 0, Message: "entered room"},
		{Time: at, Kind: "fault", Tick: 20, Room: 2, Logic: 5, Message: "division by zero"},
		{Time: at, Kind: "log", Tick: 30, Room: 2, Logic: 5, Message: "picked up key"},
	}
	for _, e := range entries {
		if err := store.Record(e); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	all, err := store.Entries("", 10)
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Entries() returned %d rows, expected 3", len(all))
	}
	// Newest first.
	if all[0].Message != "picked up key" || all[2].Message != "entered room" {
		t.Errorf("Entries() order = %q..%q, expected newest first", all[0].Message, all[2].Message)
	}
	if all[0].Tick != 30 || all[0].Room != 2 || all[0].Logic != 5 {
		t.Errorf("Entries()[0] = %+v, expected tick 30 room 2 logic 5", all[0].Entry)
	}
	if !all[0].Time.Equal(at) {
		t.Errorf("Entries()[0].Time = %v, expected %v", all[0].Time, at)
	}

	faults, err := store.Entries("fault", 10)
	if err != nil {
		t.Fatalf("Entries(fault) failed: %v", err)
	}
	if len(faults) != 1 || !strings.Contains(faults[0].Message, "division") {
		t.Errorf("Entries(fault) = %+v, expected the division fault", faults)
	}

	n, err := store.FaultCount()
	if err != nil {
		t.Fatalf("FaultCount() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("FaultCount() = %d, expected 1", n)
	}
}

func TestStoreEntriesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if err := store.Record(interp.Entry{Kind: "log", Tick: uint64(i), Message: "tick"}); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	got, err := store.Entries("log", 5)
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Entries() returned %d rows, expected 5", len(got))
	}
	if got[0].Tick != 19 {
		t.Errorf("Entries()[0].Tick = %d, expected 19", got[0].Tick)
	}
}

func TestSessionJournal(t *testing.T) {
	store := openTestStore(t)

	j, err := store.Journal("KQ1", "graham")
	if err != nil {
		t.Fatalf("Journal() failed: %v", err)
	}
	if err := j.Record(interp.Entry{Kind: "log", Tick: 5, Message: "hello"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := j.Record(interp.Entry{Kind: "fault", Tick: 6, Message: "boom"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	// An entry outside the session.
	if err := store.Record(interp.Entry{Kind: "log", Message: "other"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := j.End(600, 1); err != nil {
		t.Fatalf("End() failed: %v", err)
	}

	entries, err := store.SessionEntries(j.ID())
	if err != nil {
		t.Fatalf("SessionEntries() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("SessionEntries() returned %d rows, expected 2", len(entries))
	}
	if entries[0].Message != "hello" || entries[1].Message != "boom" {
		t.Errorf("SessionEntries() = %q, %q, expected recording order", entries[0].Message, entries[1].Message)
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("RecentSessions() returned %d rows, expected 1", len(sessions))
	}
	s := sessions[0]
	if s.GameID != "KQ1" || s.User != "graham" {
		t.Errorf("session = %+v, expected KQ1/graham", s)
	}
	if s.Ticks != 600 || s.Faults != 1 {
		t.Errorf("session counters = %d ticks %d faults, expected 600 and 1", s.Ticks, s.Faults)
	}
	if s.EndedAt.IsZero() {
		t.Error("EndedAt is zero after End()")
	}
}

func TestStoreClearJournal(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.StartSession("KQ1", ""); err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	if err := store.Record(interp.Entry{Kind: "log", Message: "x"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := store.ClearJournal(); err != nil {
		t.Fatalf("ClearJournal() failed: %v", err)
	}

	entries, _ := store.Entries("", 10)
	sessions, _ := store.RecentSessions(10)
	if len(entries) != 0 || len(sessions) != 0 {
		t.Errorf("after ClearJournal() got %d entries %d sessions, expected none", len(entries), len(sessions))
	}
}

func TestInterpreterFaultsReachTheJournal(t *testing.T) {
	store := openTestStore(t)
	j, err := store.Journal("test", "")
	if err != nil {
		t.Fatalf("Journal() failed: %v", err)
	}

	// Logic 0 is missing from the empty library, so the first tick faults.
	lib := resource.NewLibrary()
	game := resource.Game{Logics: lib, Views: lib, Pictures: lib, Vocabulary: lib, Inventory: lib}
	it := interp.New(game, interp.Options{Journal: j})
	it.State().Vars[engine.VarAnimationInt] = 0
	if err := it.Tick(); err == nil {
		t.Fatal("Tick() without logic 0 should fail")
	}

	faults, err := store.Entries("fault", 10)
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(faults) != 1 {
		t.Fatalf("recorded %d faults, expected 1", len(faults))
	}
	if faults[0].SessionID != j.ID() {
		t.Errorf("fault session = %d, expected %d", faults[0].SessionID, j.ID())
	}
}
