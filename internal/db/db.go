package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "github.com/balkashynov/skipsmart/internal/log"
	"github.com/balkashynov/skipsmart/internal/models"
)

var DB *gorm.DB

// Location is the timezone class dates and times are expressed in
var Location = time.Local

// Options controls how the database is opened
type Options struct {
	Path     string
	Location *time.Location
	Verbose  bool // log SQL through the app logger
}

// Initialize sets up the database connection and runs migrations
func Initialize(opts Options) error {
	if opts.Path == "" {
		return fmt.Errorf("database path is empty")
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	gormLogger := logger.Default.LogMode(logger.Silent) // Quiet by default
	if opts.Verbose {
		gormLogger = logger.New(applog.GormWriter{}, logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Info,
		})
	}

	// Foreign keys are off by default in sqlite
	db, err := gorm.Open(sqlite.Open(opts.Path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	if opts.Location != nil {
		Location = opts.Location
	}

	// Run auto-migrations
	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations creates/updates the database schema
func runMigrations() error {
	return DB.AutoMigrate(
		&models.Semester{},
		&models.Subject{},
		&models.ClassSession{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
