package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	want := &Config{
		Version:        1,
		APIURL:         "https://shop.example.com/api",
		TimeoutSeconds: 10,
	}
	if err := WriteConfig(dir, want); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	got, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if *got != *want {
		t.Errorf("ReadConfig() = %+v, want %+v", got, want)
	}
}

func TestReadConfigMissing(t *testing.T) {
	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Error("ReadConfig() error = nil for missing file, want error")
	}
}

func TestReadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadConfig(dir); err == nil {
		t.Error("ReadConfig() error = nil for malformed file, want error")
	}
}

func TestWriteConfigCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".spoke")
	if err := WriteConfig(dir, DefaultConfig()); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
}
