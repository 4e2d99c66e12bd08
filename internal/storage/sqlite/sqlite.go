// Package sqlite opens an embedded SQLite database through gorm. The driver
// is pure Go, so local runs and tests need no cgo toolchain or server.
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/gravadigital/partnerships-api/internal/logger"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Open opens (or creates) the database at path.
func Open(path string) (*gorm.DB, error) {
	log := logger.Database()

	if path == "" {
		path = "./data/partnerships.db"
	}
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Error("Failed to open sqlite database", "path", path, "error", err)
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// every connection to :memory: is a separate database; writers serialize anyway
	sqlDB.SetMaxOpenConns(1)

	log.Info("Opened sqlite database", "path", path)
	return db, nil
}

func dsn(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == MemoryPath {
		return path + "?" + pragmas
	}
	if strings.Contains(path, "?") {
		return path + "&" + pragmas
	}
	return path + "?" + pragmas + "&_pragma=journal_mode(WAL)"
}
