package config

import (
	"os"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendMinIO {
		t.Fatalf("unexpected default backend: %s", cfg.Storage.Backend)
	}
	if cfg.Storage.Locators != LocatorsProxy {
		t.Fatalf("unexpected default locator mode: %s", cfg.Storage.Locators)
	}
	if cfg.Storage.MaxUploadBytes != 100*1024*1024 {
		t.Fatalf("unexpected default upload cap: %d", cfg.Storage.MaxUploadBytes)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	_ = os.Setenv("STORAGE_BACKEND", "tape")
	defer os.Unsetenv("STORAGE_BACKEND")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadRejectsPresignedLocatorsOnDisk(t *testing.T) {
	_ = os.Setenv("STORAGE_BACKEND", "disk")
	_ = os.Setenv("STORAGE_LOCATORS", "presigned")
	defer os.Unsetenv("STORAGE_BACKEND")
	defer os.Unsetenv("STORAGE_LOCATORS")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for presigned locators on disk backend")
	}
}

func TestServerURLTrailingSlashTrimmed(t *testing.T) {
	_ = os.Setenv("SERVER_URL", "http://localhost:8080/")
	defer os.Unsetenv("SERVER_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.PublicBaseURL != "http://localhost:8080" {
		t.Fatalf("expected trimmed base URL, got %q", cfg.Storage.PublicBaseURL)
	}
}
