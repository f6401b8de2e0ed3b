package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables of the reader's store. They double as change-bus topics.
const (
	TableLanguages    = "languages"
	TableBooks        = "books"
	TableChapters     = "chapters"
	TableVerses       = "verses"
	TableHeadings     = "headings"
	TableTranslations = "translations"
	TableBookmarks    = "bookmarks"
	TableHighlights   = "highlights"
)

// Database owns the gorm handle of the reader store.
type Database struct {
	DB *gorm.DB
}

// Options tunes how Open configures gorm.
type Options struct {
	// LogLevel controls gorm's SQL logging. Default: logger.Warn
	LogLevel logger.LogLevel
}

// NewDatabase opens dbPath with the default options.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(dbPath, Options{LogLevel: logger.Warn})
}

// Open connects to the SQLite file at dbPath, applies the embedded
// migrations and caps the pool at a single writer connection.
func Open(dbPath string, opts Options) (*Database, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}

	registerSQLiteDriver()

	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: DriverName, DSN: dsn}), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}

	if err := runMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping reports whether the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Optimize lets SQLite refresh its query planner statistics.
func (d *Database) Optimize(ctx context.Context) error {
	if err := d.DB.WithContext(ctx).Exec("PRAGMA optimize").Error; err != nil {
		return Classify("optimize", err)
	}
	return nil
}
