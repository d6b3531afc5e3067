package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadInfoResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	infoPath := filepath.Join(dir, DefaultFileName)

	source := `{
    "root": "./src",
    "locale_paths": ["./shared/locale"],
    "cache_path": ".cache/compile.db",
    "job_count": 3
}`
	if err := os.WriteFile(infoPath, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write project file: %s", err)
	}

	info, err := ReadInfo(infoPath)
	if err != nil {
		t.Fatalf("failed to read project file: %s", err)
	}

	if want := filepath.Join(dir, "src"); info.RootDir != want {
		t.Errorf("root dir: %q, want: %q", info.RootDir, want)
	}
	if want := filepath.Join(dir, "shared", "locale"); len(info.LocalePaths) != 1 || info.LocalePaths[0] != want {
		t.Errorf("locale paths: %v, want: [%q]", info.LocalePaths, want)
	}
	if want := filepath.Join(dir, ".cache", "compile.db"); info.CachePath != want {
		t.Errorf("cache path: %q, want: %q", info.CachePath, want)
	}
	if info.JobCount != 3 {
		t.Errorf("job count: %d, want: 3", info.JobCount)
	}
}

func TestReadInfoMissingFile(t *testing.T) {
	_, err := ReadInfo(filepath.Join(t.TempDir(), DefaultFileName))
	if err == nil {
		t.Error("expected error for missing project file, got none")
	}
}

func TestReadInfoOrDefaults(t *testing.T) {
	info, err := ReadInfoOr(filepath.Join(t.TempDir(), DefaultFileName))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got error: %s", err)
	}

	if info.RootDir != "./" {
		t.Errorf("default root dir: %q, want: %q", info.RootDir, "./")
	}
	if info.JobCount <= 0 {
		t.Errorf("default job count: %d, want positive", info.JobCount)
	}
}

func TestReadInfoOrBrokenFile(t *testing.T) {
	infoPath := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(infoPath, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("failed to write project file: %s", err)
	}

	_, err := ReadInfoOr(infoPath)
	if err == nil {
		t.Error("expected error for broken project file, got none")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	infoPath := filepath.Join(dir, DefaultFileName)

	info := &Info{
		RootDir:  "./",
		Ignore:   []string{"vendor"},
		JobCount: 2,
		UseFuzzy: true,
	}

	if err := info.SaveFile(infoPath); err != nil {
		t.Fatalf("failed to save project file: %s", err)
	}

	loaded, err := ReadInfo(infoPath)
	if err != nil {
		t.Fatalf("failed to read project file back: %s", err)
	}

	if len(loaded.Ignore) != 1 || loaded.Ignore[0] != "vendor" {
		t.Errorf("ignore patterns: %v, want: [vendor]", loaded.Ignore)
	}
	if loaded.JobCount != 2 {
		t.Errorf("job count: %d, want: 2", loaded.JobCount)
	}
	if !loaded.UseFuzzy {
		t.Error("use_fuzzy flag lost in round trip")
	}
}
