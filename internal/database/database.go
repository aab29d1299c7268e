package database

import (
	"fmt"

	"github.com/fencetrade/signalboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open opens the sqlite database at dsn and applies the schema. The
// handle is opened once at startup and injected into the services;
// there is no package-level instance. Migration is additive and
// deterministic, and any migration error aborts startup rather than
// leaving a possibly-inconsistent schema behind.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Signal{},
		&models.PendingRequest{},
		&models.Affiliate{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
