package cfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestResolveCacheDirExplicit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	resolved, err := ResolveCacheDir(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resolved != dir {
		t.Errorf("Expected %s, got: %s", dir, resolved)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		t.Fatalf("Expected cache directory to be created, got: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}
}

func TestResolveCacheDirIdempotent(t *testing.T) {
	dir := t.TempDir()

	if _, err := ResolveCacheDir(dir); err != nil {
		t.Fatalf("Expected no error for existing directory, got: %v", err)
	}
	if _, err := ResolveCacheDir(dir); err != nil {
		t.Fatalf("Expected no error on repeat, got: %v", err)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		CacheDir:        "/tmp/cache",
		SourcesFile:     "./sources.yml",
		Port:            "8080",
		WorkerCount:     5,
		RefreshInterval: 300,
		FetchTimeout:    30,
		UserAgent:       "Test Agent",
		Debug:           true,
		Version:         "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("Expected worker count 5, got %d", cfg.WorkerCount)
	}
	if cfg.RefreshInterval != 300 {
		t.Errorf("Expected refresh interval 300, got %d", cfg.RefreshInterval)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
