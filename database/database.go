package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/math-a3k/pocompile/database/data_model"

	"gorm.io/gorm"
)

func Open(filePath string) (*gorm.DB, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %s", dir, err)
	}

	db, err := gorm.Open(sqlite.Open(filePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %s", filePath, err)
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&data_model.CompileEntry{},
	)
	if err != nil {
		return fmt.Errorf("database migration failed: %s", err)
	}

	return nil
}

func Close(db *gorm.DB) error {
	inner, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to close database, can't read inner data: %s", err)
	}

	err = inner.Close()
	if err != nil {
		return fmt.Errorf("failed to close inner database: %s", err)
	}

	return nil
}
