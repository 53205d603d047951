package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/arpanp11/imaginify-saas/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store named by databaseURL: Postgres for a regular DSN,
// SQLite for "sqlite:" URLs, and an in-memory SQLite database when the URL
// is empty or ":memory:". The handle is constructed once at the composition
// root and injected into repositories; callers own its lifecycle.
func Connect(databaseURL string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	inMemory := false

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	if databaseURL == "" || databaseURL == ":memory:" {
		inMemory = true
		db, err = gorm.Open(sqlite.Open(":memory:"), config)
	} else if strings.HasPrefix(databaseURL, "sqlite:") {
		dbPath := strings.TrimPrefix(databaseURL, "sqlite:")
		if dbPath == ":memory:" {
			inMemory = true
		} else {
			dbPath = dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), config)
	} else {
		db, err = gorm.Open(postgres.Open(databaseURL), config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	if inMemory {
		// Each pooled connection to ":memory:" would get its own empty
		// database, so pin the pool to a single connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Image{},
		&models.APIToken{},
		&models.GiftLink{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
