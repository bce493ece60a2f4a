package persistence

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/sereci/sirepre/internal/infrastructure/logger"
	"github.com/sereci/sirepre/internal/infrastructure/persistence/models"
)

// Database holds the database connection
type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase opens the configured database. Queries are logged through
// log at logLevel ("silent", "error", "warn", "info").
func NewDatabase(cfg *config.DatabaseConfig, log *zap.Logger, logLevel string) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	gcfg := &gorm.Config{SkipDefaultTransaction: true, TranslateError: true}
	if log != nil {
		gcfg.Logger = logger.NewGormLogger(log, logger.GormLevel(logLevel), 200*time.Millisecond)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.Driver == "sqlite" {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db, Driver: cfg.Driver}, nil
}

// AutoMigrate creates the schema from the models. It is used for sqlite
// development databases; postgres is migrated with SQL files.
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.VenueModel{},
		&models.ApplicantModel{},
		&models.ReviewModel{},
		&models.SystemConfigModel{},
		&models.UploadedFileModel{},
		&models.StaffUserModel{},
	)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}
