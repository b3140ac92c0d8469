// internal/db/db.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/relivo/orgportal/internal/config"
	"github.com/relivo/orgportal/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres and tunes the pool. DATABASE_URL wins when
// set; otherwise the DSN is composed from the discrete settings.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.URL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
			cfg.Database.SSLMode,
			cfg.Database.SearchPath,
		)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	gdb, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return gdb, nil
}

// EnsureSchema creates missing tables and adds missing columns.
// AutoMigrate is additive only: it never drops or rewrites existing
// columns, matching the portal's incremental-alter startup behavior.
func EnsureSchema(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.Grant{},
	); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
