package compile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/catalog"
	"github.com/math-a3k/pocompile/database"
	"github.com/math-a3k/pocompile/database/data_model"
	"gorm.io/gorm"
)

// Cache remembers fingerprints of successfully compiled catalogs, letting
// repeated runs skip unchanged PO files. A nil Cache disables skipping.
type Cache struct {
	db *gorm.DB
	mu sync.Mutex
}

func OpenCache(path string) (*Cache, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}

	return database.Close(c.db)
}

// Fingerprint captures the current state of a catalog source file.
func Fingerprint(cat catalog.Catalog) (*data_model.CompileEntry, error) {
	info, err := os.Stat(cat.POPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %s", cat.POPath, err)
	}

	file, err := os.Open(cat.POPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %s", cat.POPath, err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return nil, fmt.Errorf("failed to hash %s: %s", cat.POPath, err)
	}

	return &data_model.CompileEntry{
		POPath: cat.POPath,
		MOPath: cat.MOPath(),

		Locale: cat.Locale,
		Domain: cat.Domain,

		ContentHash: hex.EncodeToString(hash.Sum(nil)),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

// IsFresh reports whether the recorded compilation of entry's PO path is
// still valid, meaning content, tool version and fuzzy handling all match
// and the compiled file is still in place.
func (c *Cache) IsFresh(entry *data_model.CompileEntry) bool {
	if c == nil {
		return false
	}

	stored, err := data_model.FindCompileEntry(c.db, entry.POPath)
	if err != nil {
		log.Warnf("cache lookup failed for %s: %s", entry.POPath, err)
		return false
	}
	if stored == nil {
		return false
	}

	if stored.ContentHash != entry.ContentHash ||
		stored.Size != entry.Size ||
		stored.MsgfmtVersion != entry.MsgfmtVersion ||
		stored.UseFuzzy != entry.UseFuzzy {
		return false
	}

	if _, err := os.Stat(entry.MOPath); err != nil {
		return false
	}

	return true
}

// Record stores the fingerprint of a compiled catalog. Failures only cost
// future skips, so they are logged instead of propagated.
func (c *Cache) Record(entry *data_model.CompileEntry) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := entry.Upsert(c.db); err != nil {
		log.Warnf("failed to record compile result for %s: %s", entry.POPath, err)
	}
}
