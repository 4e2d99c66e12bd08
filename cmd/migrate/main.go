package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
	"github.com/gravadigital/partnerships-api/internal/storage/postgres"
	"github.com/gravadigital/partnerships-api/internal/storage/sqlite"
)

func main() {
	cfg := config.Load()

	logger.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	log := logger.Migration()

	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	status := flag.Bool("status", false, "List applied migrations")
	backend := flag.String("storage", cfg.Storage.Type, "Database to migrate: postgres or sqlite")
	flag.Parse()

	log.Info("Starting migration process", "storage", *backend, "rollback", *rollback)

	db, err := open(cfg, *backend)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer postgres.Close(db)

	switch {
	case *status:
		applied, err := migrations.Applied(db)
		if err != nil {
			log.Error("Failed to list migrations", "error", err)
			os.Exit(1)
		}
		for _, m := range applied {
			fmt.Printf("%s  %-28s %s\n", m.ID, m.Name, m.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		return
	case *rollback:
		log.Info("Rolling back migrations...")
		err := migrations.RollbackMigration(db)
		if errors.Is(err, migrations.ErrNothingToRollback) {
			log.Warn("No migration to roll back")
			return
		}
		if err != nil {
			log.Error("Migration rollback failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migration rollback completed successfully")
	default:
		log.Info("Running migrations...")
		if err := migrations.RunMigrations(db); err != nil {
			log.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migrations completed successfully")
	}

	fmt.Println("Migration process completed!")
}

func open(cfg *config.Config, backend string) (*gorm.DB, error) {
	switch backend {
	case "postgres":
		return postgres.Connect(cfg)
	case "sqlite":
		return sqlite.Open(cfg.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("storage %q has no schema to migrate", backend)
	}
}
