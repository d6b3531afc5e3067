package compile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInstallMO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.mo")

	if err := installMO(path, []byte("binary catalog")); err != nil {
		t.Fatalf("install failed: %s", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("installed file not readable: %s", err)
	}
	if string(data) != "binary catalog" {
		t.Errorf("content: %q, want: %q", data, "binary catalog")
	}
}

func TestInstallMOReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.mo")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("failed to write existing file: %s", err)
	}

	if err := installMO(path, []byte("new")); err != nil {
		t.Fatalf("install failed: %s", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("installed file not readable: %s", err)
	}
	if string(data) != "new" {
		t.Errorf("content: %q, want: %q", data, "new")
	}
}

func TestIsWritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.mo")

	if !isWritable(path) {
		t.Error("fresh location in temp dir reported unwritable")
	}

	// probing leaves an empty file behind
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("probe file missing: %s", err)
	}
	if info.Size() != 0 {
		t.Errorf("probe file size: %d, want: 0", info.Size())
	}

	if !isWritable(path) {
		t.Error("existing probe file reported unwritable")
	}
}

func TestIsWritableMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "probe.mo")

	if isWritable(path) {
		t.Error("location in missing directory reported writable")
	}
}
