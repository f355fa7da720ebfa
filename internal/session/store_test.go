package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	token, err := store.Load()
	if err != nil || token != "" {
		t.Errorf("Load() with no file = %q, %v, want empty, nil", token, err)
	}

	if err := store.Save("tok-xyz"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	token, err = store.Load()
	if err != nil || token != "tok-xyz" {
		t.Errorf("Load() = %q, %v, want tok-xyz", token, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v, want nil", err)
	}
	token, _ = store.Load()
	if token != "" {
		t.Errorf("Load() after Clear = %q, want empty", token)
	}
}

func TestStoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "token"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}
