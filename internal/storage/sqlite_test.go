package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.fidget/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".fidget", "test.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestInteractedFlag(t *testing.T) {
	store := openTemp(t)

	seen, err := store.HasInteracted()
	if err != nil {
		t.Fatalf("HasInteracted() failed: %v", err)
	}
	if seen {
		t.Error("fresh store should not have interacted")
	}

	for i := 0; i < 2; i++ {
		if err := store.MarkInteracted(); err != nil {
			t.Fatalf("MarkInteracted() failed: %v", err)
		}
	}

	seen, err = store.HasInteracted()
	if err != nil || !seen {
		t.Errorf("HasInteracted() = %v, %v after marking", seen, err)
	}
}

func TestInteractedFlagPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.MarkInteracted(); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if seen, _ := store.HasInteracted(); !seen {
		t.Error("flag should survive a reopen")
	}
}

func TestSettings(t *testing.T) {
	store := openTemp(t)

	if _, ok, err := store.Setting("missing"); ok || err != nil {
		t.Errorf("Setting(missing) ok=%v err=%v", ok, err)
	}

	if err := store.SetSetting("volume", "0.5"); err != nil {
		t.Fatalf("SetSetting() failed: %v", err)
	}
	if err := store.SetSetting("volume", "0.7"); err != nil {
		t.Fatalf("SetSetting() overwrite failed: %v", err)
	}
	v, ok, err := store.Setting("volume")
	if err != nil || !ok || v != "0.7" {
		t.Errorf("Setting(volume) = %q, %v, %v", v, ok, err)
	}

	if b, _ := store.BoolSetting(KeySound, true); !b {
		t.Error("unset bool should return the default")
	}
	if err := store.SetBoolSetting(KeySound, false); err != nil {
		t.Fatal(err)
	}
	if b, _ := store.BoolSetting(KeySound, true); b {
		t.Error("stored false should override the default")
	}
}

func TestInteractions(t *testing.T) {
	store := openTemp(t)

	record := func(toy, session string) {
		t.Helper()
		if _, err := store.RecordInteraction(toy, session); err != nil {
			t.Fatalf("RecordInteraction() failed: %v", err)
		}
	}
	record("knob", "a")
	record("knob", "a")
	record("knob", "b")
	record("toggle", "a")

	stats, err := store.Interactions()
	if err != nil {
		t.Fatalf("Interactions() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 toys, got %d", len(stats))
	}

	// Most used first
	if stats[0].ToyID != "knob" || stats[0].Count != 3 || stats[0].Sessions != 2 {
		t.Errorf("knob stats = %+v", stats[0])
	}
	if stats[1].ToyID != "toggle" || stats[1].Count != 1 {
		t.Errorf("toggle stats = %+v", stats[1])
	}
	if stats[0].LastUsed.IsZero() || time.Since(stats[0].LastUsed) > 24*time.Hour {
		t.Errorf("LastUsed = %v", stats[0].LastUsed)
	}
}

func TestRecentInteractions(t *testing.T) {
	store := openTemp(t)
	for _, toy := range []string{"knob", "slider", "keycap"} {
		store.RecordInteraction(toy, "s")
	}

	recent, err := store.RecentInteractions(2)
	if err != nil {
		t.Fatalf("RecentInteractions() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ToyID != "keycap" || recent[1].ToyID != "slider" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestClearInteractions(t *testing.T) {
	store := openTemp(t)
	store.RecordInteraction("knob", "s")
	store.MarkInteracted()

	if err := store.ClearInteractions(); err != nil {
		t.Fatalf("ClearInteractions() failed: %v", err)
	}

	stats, _ := store.Interactions()
	if len(stats) != 0 {
		t.Errorf("Expected no stats after clear, got %d", len(stats))
	}
	if seen, _ := store.HasInteracted(); !seen {
		t.Error("clearing interactions should keep the first-use flag")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	tests := []struct {
		in   any
		want time.Time
	}{
		{want, want},
		{"2024-05-06 07:08:09", want},
		{"2024-05-06T07:08:09Z", want},
		{"garbage", time.Time{}},
		{nil, time.Time{}},
	}
	for _, tt := range tests {
		if got := parseTime(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseTime(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
