package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/animeshelf/library/internal/config"
	"github.com/animeshelf/library/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a SQL database for the configured driver and migrates
// the schema. Mongo is handled by the mongostore package.
func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, err
	}

	log.Printf("Database initialized successfully (%s)", cfg.Driver)

	return database, nil
}

// NewSQLiteDatabase is a shorthand for a SQLite file database.
func NewSQLiteDatabase(path string) (*Database, error) {
	return NewDatabase(config.Database{Driver: config.DriverSQLite, URL: path, LogLevel: "silent"})
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.Open(sqliteDSN(cfg.URL)), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", cfg.Driver)
	}
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off by
// default, and waits on locks instead of failing concurrent writes.
func sqliteDSN(path string) string {
	for _, opt := range []string{"_foreign_keys=1", "_busy_timeout=5000"} {
		key, _, _ := strings.Cut(opt, "=")
		if strings.Contains(path, key) {
			continue
		}
		if strings.Contains(path, "?") {
			path += "&" + opt
		} else {
			path += "?" + opt
		}
	}
	return path
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate creates or updates tables and indexes for all entities.
func (d *Database) Migrate() error {
	err := d.DB.AutoMigrate(
		&entities.User{},
		&entities.Anime{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks that the underlying connection pool can reach the database.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
