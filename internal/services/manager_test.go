package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/veyl/abyssal-tracker-tui/internal/config"
	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

func writeUTF16Log(t *testing.T, path string, lines ...string) {
	t.Helper()
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, _, err := transform.Bytes(encoder, []byte(strings.Join(lines, "\r\n")+"\r\n"))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func newTestManager(t *testing.T, logsPath string) *Manager {
	t.Helper()
	dataDir := t.TempDir()
	cfg := &config.Config{
		LogsPath:        logsPath,
		DatabasePath:    filepath.Join(dataDir, "runs.db"),
		TypeIDCachePath: filepath.Join(dataDir, "typeid_cache.json"),
		PollInterval:    time.Hour, // keep the poll loop quiet during tests
	}
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	m.SetNotifications(false)
	return m
}

func TestManagerImportHistory(t *testing.T) {
	logsDir := t.TempDir()
	writeUTF16Log(t, filepath.Join(logsDir, "Local_20250601_100000_100.txt"),
		"  Listener:        Kirin Sohn",
		"[ 2025.06.01 01:00:00 ] EVE System > Channel changed to Local : Jita",
		"[ 2025.06.01 01:10:00 ] EVE System > Channel changed to Local : Unknown",
		"[ 2025.06.01 01:25:00 ] EVE System > Channel changed to Local : Jita",
	)

	m := newTestManager(t, logsDir)

	imported, err := m.ImportHistory()
	if err != nil {
		t.Fatalf("ImportHistory: %v", err)
	}
	if imported != 1 {
		t.Fatalf("imported %d runs, want 1", imported)
	}

	// A second import of the same files must be a no-op.
	imported, err = m.ImportHistory()
	if err != nil {
		t.Fatalf("second ImportHistory: %v", err)
	}
	if imported != 0 {
		t.Errorf("re-import added %d runs, want 0", imported)
	}

	runs, err := m.Store().ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].DurationMinutes() != 15 {
		t.Errorf("stored runs = %+v", runs)
	}
}

func TestManagerRecordRunDetails(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	run := models.RunRecord{
		Start: time.Date(2025, 6, 1, 10, 0, 0, 0, models.ReportingZone),
		End:   time.Date(2025, 6, 1, 10, 20, 0, 0, models.ReportingZone),
	}
	if _, err := m.Store().InsertRun(&run); err != nil {
		t.Fatal(err)
	}

	if err := m.RecordRunDetails(run.ID, "T3 Firestorm", "Small Gem*4"); err != nil {
		t.Fatalf("RecordRunDetails: %v", err)
	}

	runs, err := m.Store().ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if runs[0].Category != "T3 Firestorm" || runs[0].ItemText != "Small Gem*4" {
		t.Errorf("stored run = %+v", runs[0])
	}
}

func TestManagerAnalyzeEmptyStore(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	result, err := m.Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.HasData() {
		t.Error("empty store produced analysis data")
	}
}

func TestManagerNotificationToggleConcurrent(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	// The event router reads the toggle on its own goroutine while the TUI
	// flips it; both sides must go through the lock.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			m.SetNotifications(i%2 == 0)
		}
	}()
	for i := 0; i < 200; i++ {
		m.notificationsEnabled()
	}
	<-done

	if m.notificationsEnabled() {
		t.Error("toggle should end disabled")
	}
}

func TestManagerSubscribe(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	ch, cmd := m.Subscribe()
	if cmd == nil {
		t.Fatal("Subscribe returned nil command")
	}

	m.broadcast(FileSwitchedEvent{File: "x", Character: "y"})

	select {
	case ev := <-ch:
		if _, ok := ev.(FileSwitchedEvent); !ok {
			t.Errorf("got %T, want FileSwitchedEvent", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	m.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Error("channel still open after Unsubscribe")
	}
}
