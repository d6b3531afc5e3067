package data_model

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompileEntry records one successful catalog compilation, keyed by the
// absolute PO file path.
type CompileEntry struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	POPath string `gorm:"primaryKey"`
	MOPath string

	Locale string
	Domain string

	ContentHash string
	Size        int64
	ModTime     time.Time

	MsgfmtVersion string
	UseFuzzy      bool
}

func (entry *CompileEntry) Upsert(db *gorm.DB) error {
	result := db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "po_path"}},
			UpdateAll: true,
		},
	).Create(entry)

	return result.Error
}

// FindCompileEntry looks up the record of a PO path. A nil entry with nil
// error means the path was never compiled.
func FindCompileEntry(db *gorm.DB, poPath string) (*CompileEntry, error) {
	entry := &CompileEntry{}

	result := db.Where("po_path = ?", poPath).Take(entry)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return entry, nil
}
