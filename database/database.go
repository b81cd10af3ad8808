package database

import (
	"fmt"
	"time"

	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/reviews"
	"yamdb/internal/domain/users"
	"yamdb/internal/logging"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Config is shared by every dialector so unique-index violations surface as
// gorm.ErrDuplicatedKey regardless of the driver.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// InitDB connects to PostgreSQL and installs the connection as DB.
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	DB = db
	logging.L.Info("connected to database")
	return db, nil
}

// Migrate registers the title/genre join model and creates or updates all tables.
func Migrate(db *gorm.DB) error {
	if err := SetupJoinTables(db); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&users.User{},

		&catalog.Category{},
		&catalog.Genre{},
		&catalog.Title{},
		&catalog.TitleGenre{},

		&reviews.Review{},
		&reviews.Comment{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	logging.L.Info("database migrated")
	return nil
}

// SetupJoinTables must run on every connection before titles' genres are read or written.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&catalog.Title{}, "Genres", &catalog.TitleGenre{}); err != nil {
		return fmt.Errorf("setup title_genres join table: %w", err)
	}
	return nil
}
