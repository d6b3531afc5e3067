package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/math-a3k/pocompile/database/data_model"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cache", "compile.db")
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := openTestDB(t)

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %s", err)
	}
	defer Close(db)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file missing after open: %s", err)
	}
}

func TestCompileEntryUpsert(t *testing.T) {
	db, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("open failed: %s", err)
	}
	defer Close(db)

	entry := &data_model.CompileEntry{
		POPath:        "/project/locale/de/LC_MESSAGES/messages.po",
		MOPath:        "/project/locale/de/LC_MESSAGES/messages.mo",
		Locale:        "de",
		Domain:        "messages",
		ContentHash:   "aaaa",
		Size:          120,
		ModTime:       time.Now(),
		MsgfmtVersion: "msgfmt (GNU gettext-tools) 0.21",
	}
	if err := entry.Upsert(db); err != nil {
		t.Fatalf("insert failed: %s", err)
	}

	entry.ContentHash = "bbbb"
	entry.UseFuzzy = true
	if err := entry.Upsert(db); err != nil {
		t.Fatalf("update failed: %s", err)
	}

	var count int64
	if result := db.Model(&data_model.CompileEntry{}).Count(&count); result.Error != nil {
		t.Fatalf("count failed: %s", result.Error)
	}
	if count != 1 {
		t.Errorf("row count after double upsert: %d, want: 1", count)
	}

	found, err := data_model.FindCompileEntry(db, entry.POPath)
	if err != nil {
		t.Fatalf("lookup failed: %s", err)
	}
	if found == nil {
		t.Fatal("entry not found after upsert")
	}
	if found.ContentHash != "bbbb" {
		t.Errorf("content hash: %q, want: %q", found.ContentHash, "bbbb")
	}
	if !found.UseFuzzy {
		t.Error("use fuzzy flag not updated")
	}
	if found.Locale != "de" || found.Domain != "messages" {
		t.Errorf("locale/domain: %q/%q, want: de/messages", found.Locale, found.Domain)
	}
}

func TestFindCompileEntryMissing(t *testing.T) {
	db, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("open failed: %s", err)
	}
	defer Close(db)

	entry, err := data_model.FindCompileEntry(db, "/no/such/file.po")
	if err != nil {
		t.Fatalf("lookup failed: %s", err)
	}
	if entry != nil {
		t.Errorf("expected nil entry for unknown path, got %+v", entry)
	}
}

func TestExportCSV(t *testing.T) {
	db, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("open failed: %s", err)
	}
	defer Close(db)

	entries := []*data_model.CompileEntry{
		{POPath: "/p/locale/de/LC_MESSAGES/messages.po", Locale: "de", Domain: "messages"},
		{POPath: "/p/locale/fr/LC_MESSAGES/messages.po", Locale: "fr", Domain: "messages"},
	}
	for _, entry := range entries {
		if err := entry.Upsert(db); err != nil {
			t.Fatalf("insert failed: %s", err)
		}
	}

	fileName := filepath.Join(t.TempDir(), "cache.csv")
	if err := ExportCSV(db, &data_model.CompileEntry{}, fileName); err != nil {
		t.Fatalf("export failed: %s", err)
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		t.Fatalf("failed to read exported CSV: %s", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("line count: %d, want: 3 (header + 2 rows)\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "po_path") {
		t.Errorf("header missing po_path column: %q", lines[0])
	}
	if !strings.Contains(lines[1]+lines[2], "de") || !strings.Contains(lines[1]+lines[2], "fr") {
		t.Errorf("rows missing expected locales:\n%s", data)
	}
}
