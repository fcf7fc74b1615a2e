package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Storage.Backend != BackendCSV {
		t.Errorf("Backend = %q, want csv", cfg.Storage.Backend)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendCSV {
		t.Errorf("Backend = %q, want csv", cfg.Storage.Backend)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DataFile = "/tmp/custom.csv"
	cfg.Storage.Backend = BackendSQLite
	cfg.Appearance.Theme = "terminal"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.DataFile != "/tmp/custom.csv" ||
		got.Storage.Backend != BackendSQLite ||
		got.Appearance.Theme != "terminal" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestDataFilePrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv(EnvDataFile, "")

	cfg := DefaultConfig()

	// Flag wins over everything.
	if got := DataFile(cfg, "/flag.csv"); got != "/flag.csv" {
		t.Errorf("flag precedence: got %q", got)
	}

	// Env wins over config.
	t.Setenv(EnvDataFile, "/env.csv")
	cfg.General.DataFile = "/cfg.csv"
	if got := DataFile(cfg, ""); got != "/env.csv" {
		t.Errorf("env precedence: got %q", got)
	}

	// Config wins over default.
	t.Setenv(EnvDataFile, "")
	if got := DataFile(cfg, ""); got != "/cfg.csv" {
		t.Errorf("config precedence: got %q", got)
	}

	// Default is under the XDG data dir.
	cfg.General.DataFile = ""
	want := filepath.Join(home, "outgo", "expenses.csv")
	if got := DataFile(cfg, ""); got != want {
		t.Errorf("default = %q, want %q", got, want)
	}
}

func TestMain(m *testing.M) {
	// Tests must not pick up a developer's real config.
	os.Unsetenv(EnvDataFile)
	os.Exit(m.Run())
}
