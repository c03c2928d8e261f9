package config

import (
	"fmt"
	"strings"

	"github.com/snowcodeer/perplexitree/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Connect opens the configured database and migrates the schema.
func Connect(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Warn)}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	case DriverSQLite, "":
		db, err = gorm.Open(sqlite.Open(withForeignKeys(dsn)), cfg)
		if err == nil {
			err = limitSQLitePool(db)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Session{},
		&models.ContentItem{},
		&models.Segment{},
		&models.Decoration{},
		&models.StudyCard{},
	)
}

// SQLite only enforces REFERENCES clauses when foreign_keys is switched on for
// the connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

// SQLite allows one writer at a time.
func limitSQLitePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}
