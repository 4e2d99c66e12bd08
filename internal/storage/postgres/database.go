package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
)

const pingTimeout = 5 * time.Second

var errNilDB = errors.New("database connection is nil")

// Connect opens the PostgreSQL pool described by cfg.DB and pings it
func Connect(cfg *config.Config) (*gorm.DB, error) {
	log := logger.Database()

	if err := validateDatabaseConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	log.Debug("Connecting to database", "host", cfg.DB.Host, "port", cfg.DB.Port, "database", cfg.DB.Name)

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseURL()), GormConfig(cfg.Server.GinMode == "debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := HealthCheck(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	log.Info("Connected to PostgreSQL",
		"host", cfg.DB.Host,
		"database", cfg.DB.Name,
		"max_open_conns", cfg.DB.MaxOpenConns)

	return db, nil
}

// GormConfig returns the gorm settings shared by the relational backends.
// Duplicate-key and not-found errors are translated by gorm so the
// repositories can map them onto domain errors.
func GormConfig(verbose bool) *gorm.Config {
	level := gormLogger.Silent
	if verbose {
		level = gormLogger.Info
	}
	return &gorm.Config{
		Logger:         gormLogger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func validateDatabaseConfig(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}
	missing := map[string]string{
		"host": cfg.DB.Host,
		"port": cfg.DB.Port,
		"name": cfg.DB.Name,
		"user": cfg.DB.User,
	}
	for _, field := range []string{"host", "port", "name", "user"} {
		if missing[field] == "" {
			return fmt.Errorf("database %s cannot be empty", field)
		}
	}
	return nil
}

// HealthCheck pings the database
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := SQLDB(db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// SQLDB unwraps the pool behind a gorm handle
func SQLDB(db *gorm.DB) (*sql.DB, error) {
	if db == nil {
		return nil, errNilDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB, nil
}

// AutoMigrate runs the versioned migrations
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errNilDB
	}

	log := logger.Migration()
	start := time.Now()
	if err := migrations.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database migrations completed", "duration", time.Since(start))
	return nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := SQLDB(db)
	if err != nil {
		return err
	}

	stats := sqlDB.Stats()
	logger.Database().Debug("Closing connection pool",
		"open_connections", stats.OpenConnections,
		"in_use_connections", stats.InUse,
		"idle_connections", stats.Idle)

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// poolInfo returns pool statistics for diagnostics
func poolInfo(db *gorm.DB) map[string]any {
	sqlDB, err := SQLDB(db)
	if err != nil {
		return map[string]any{"connected": false, "error": err.Error()}
	}

	stats := sqlDB.Stats()
	return map[string]any{
		"connected":            true,
		"open_connections":     stats.OpenConnections,
		"in_use_connections":   stats.InUse,
		"idle_connections":     stats.Idle,
		"max_open_connections": stats.MaxOpenConnections,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
	}
}
