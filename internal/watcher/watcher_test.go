package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/storage"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		event  fsnotify.Event
		want   EventType
		wantOK bool
	}{
		{"storage write", fsnotify.Event{Name: "/x/storage.json", Op: fsnotify.Write}, EventSettingsChanged, true},
		{"storage create", fsnotify.Event{Name: "/x/storage.json", Op: fsnotify.Create}, EventSettingsChanged, true},
		{"storage chmod", fsnotify.Event{Name: "/x/storage.json", Op: fsnotify.Chmod}, 0, false},
		{"daemon write", fsnotify.Event{Name: "/x/daemon.yaml", Op: fsnotify.Write}, EventDaemonChanged, true},
		{"daemon remove", fsnotify.Event{Name: "/x/daemon.yaml", Op: fsnotify.Remove}, EventDaemonRemoved, true},
		{"temp file", fsnotify.Event{Name: "/x/storage.json.tmp", Op: fsnotify.Write}, 0, false},
		{"unrelated", fsnotify.Event{Name: "/x/notes.txt", Op: fsnotify.Write}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classify(tt.event)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("classify(%v) = %v, %v; want %v, %v", tt.event, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
	return Event{}
}

func TestSettingsWriteIsReportedOnce(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	store := storage.NewFileStore(filepath.Join(dir, config.StorageFileName))
	ctx := context.Background()
	s := models.NewPetSettings()
	for i := 1; i <= 3; i++ {
		s.SetMoveIntervalSeconds(i)
		if err := config.SaveSettings(ctx, store, s); err != nil {
			t.Fatalf("SaveSettings() error: %v", err)
		}
	}

	ev := nextEvent(t, w)
	if ev.Type != EventSettingsChanged {
		t.Errorf("event type = %s, want settings-changed", ev.Type)
	}
	if filepath.Base(ev.Path) != config.StorageFileName {
		t.Errorf("event path = %s", ev.Path)
	}

	select {
	case extra := <-w.Events():
		t.Errorf("burst produced an extra event: %+v", extra)
	case <-time.After(3 * DebounceDelay):
	}
}

func TestDaemonFileLifecycle(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	path := filepath.Join(dir, config.DaemonFileName)
	if err := os.WriteFile(path, []byte("port: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if ev := nextEvent(t, w); ev.Type != EventDaemonChanged {
		t.Errorf("after write got %s, want daemon-changed", ev.Type)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if ev := nextEvent(t, w); ev.Type != EventDaemonRemoved {
		t.Errorf("after remove got %s, want daemon-removed", ev.Type)
	}
}

func TestStartFailsForMissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Stop()
	if err := w.Start(); err == nil {
		t.Error("Start() on a missing directory succeeded")
	}
}

func TestNewDefaultsToGlobalDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.HomeEnv, dir)

	w, err := New("")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Stop()
	if w.dir != dir {
		t.Errorf("dir = %s, want %s", w.dir, dir)
	}
}
