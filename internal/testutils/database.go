package testutils

import (
	"fmt"
	"testing"
	"time"

	"yamdb/config"
	"yamdb/database"
	"yamdb/internal/infra/mail"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database, migrates it and installs it as the
// global database.DB for handlers that use it directly. The previous value is restored on cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	cfg := database.Config()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A shared-cache memory database serializes writers; one connection avoids lock errors.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})

	return db
}

// SetupTestConfig sets the configuration the handlers read, without touching the environment.
func SetupTestConfig(t *testing.T) {
	t.Helper()

	jwtSecret, secretKey := config.JWT_SECRET, config.SECRET_KEY
	accessTTL, refreshTTL, codeTTL := config.ACCESS_TOKEN_TTL, config.REFRESH_TOKEN_TTL, config.CONFIRMATION_CODE_TTL
	rateLimit, rateBurst := config.AUTH_RATE_LIMIT, config.AUTH_RATE_BURST
	t.Cleanup(func() {
		config.JWT_SECRET, config.SECRET_KEY = jwtSecret, secretKey
		config.ACCESS_TOKEN_TTL, config.REFRESH_TOKEN_TTL, config.CONFIRMATION_CODE_TTL = accessTTL, refreshTTL, codeTTL
		config.AUTH_RATE_LIMIT, config.AUTH_RATE_BURST = rateLimit, rateBurst
	})

	config.JWT_SECRET = "test-jwt-secret"
	config.SECRET_KEY = "test-secret-key"
	config.ACCESS_TOKEN_TTL = time.Hour
	config.REFRESH_TOKEN_TTL = 24 * time.Hour
	config.CONFIRMATION_CODE_TTL = time.Hour
	config.AUTH_RATE_LIMIT = 1000
	config.AUTH_RATE_BURST = 1000
}

// SetupMail installs a recording mail sender for the duration of the test.
func SetupMail(t *testing.T) *mail.Recorder {
	t.Helper()

	rec := &mail.Recorder{}
	prev := mail.SetDefault(rec)
	t.Cleanup(func() { mail.SetDefault(prev) })
	return rec
}
